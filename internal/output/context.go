package output

import "context"

// Options are the per-invocation printing options set from global flags.
type Options struct {
	Format   Format
	Query    string
	Limit    int // 0 = unlimited
	SortBy   string
	SortDesc bool
	Quiet    bool
}

type optionsKey struct{}

// WithOptions attaches opts to ctx, replacing any earlier options.
func WithOptions(ctx context.Context, opts Options) context.Context {
	return context.WithValue(ctx, optionsKey{}, opts)
}

// OptionsFromContext returns the options attached to ctx. Missing options
// default to text output with no query, limit or sort.
func OptionsFromContext(ctx context.Context) Options {
	var opts Options
	if ctx != nil {
		opts, _ = ctx.Value(optionsKey{}).(Options)
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	return opts
}

func update(ctx context.Context, fn func(*Options)) context.Context {
	opts := OptionsFromContext(ctx)
	fn(&opts)
	return WithOptions(ctx, opts)
}

// WithFormat sets the output format.
func WithFormat(ctx context.Context, format Format) context.Context {
	return update(ctx, func(o *Options) { o.Format = format })
}

// FormatFromContext returns the output format, FormatText when unset.
func FormatFromContext(ctx context.Context) Format {
	return OptionsFromContext(ctx).Format
}

// WithQuery sets the jq expression applied to JSON output.
func WithQuery(ctx context.Context, query string) context.Context {
	return update(ctx, func(o *Options) { o.Query = query })
}

func QueryFromContext(ctx context.Context) string {
	return OptionsFromContext(ctx).Query
}

// WithLimit caps the number of top-level items printed.
func WithLimit(ctx context.Context, limit int) context.Context {
	return update(ctx, func(o *Options) { o.Limit = limit })
}

func LimitFromContext(ctx context.Context) int {
	return OptionsFromContext(ctx).Limit
}

// WithSort sorts top-level items by field before printing.
func WithSort(ctx context.Context, field string, desc bool) context.Context {
	return update(ctx, func(o *Options) {
		o.SortBy = field
		o.SortDesc = desc
	})
}

func SortFromContext(ctx context.Context) (field string, desc bool) {
	opts := OptionsFromContext(ctx)
	return opts.SortBy, opts.SortDesc
}

// WithQuiet suppresses notices that are not part of the output.
func WithQuiet(ctx context.Context, quiet bool) context.Context {
	return update(ctx, func(o *Options) { o.Quiet = quiet })
}

func QuietFromContext(ctx context.Context) bool {
	return OptionsFromContext(ctx).Quiet
}
