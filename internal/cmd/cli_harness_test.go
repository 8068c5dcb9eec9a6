package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/salmonumbrella/ptree/internal/portabletext"
)

const harnessDocument = `[
  {"_type":"block","style":"h1","children":[{"_type":"span","text":"Title"}]},
  {"_type":"block","style":"normal","children":[
    {"_type":"span","text":"Hello "},
    {"_type":"span","text":"world","marks":["strong"]}
  ]},
  {"_type":"block","listItem":"bullet","level":1,"children":[{"_type":"span","text":"one"}]},
  {"_type":"block","listItem":"bullet","level":2,"children":[{"_type":"span","text":"one-a"}]},
  {"_type":"block","style":"normal","children":[{"_type":"span","text":"  "}]},
  {"_type":"image","_key":"img1","alt":"Cat"}
]`

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with an empty config file and no
// environment, feeding stdin to the command.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	restore := snapshotCLIState()
	defer restore()

	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	in := strings.NewReader(stdin)

	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(in)
	rootCmd.SetContext(context.Background())

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(""), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	prevEnvGet := envGet
	envGet = func(string) string { return "" }
	defer func() { envGet = prevEnvGet }()

	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--env-file", ""}, args...))
	err := rootCmd.Execute()
	return cliResult{stdout: out.String(), stderr: errBuf.String(), err: err}
}

func TestCLIFormatJSON(t *testing.T) {
	res := runCLI(t, harnessDocument, "format", "--output", "json")
	if res.err != nil {
		t.Fatalf("execute: %v (stderr %q)", res.err, res.stderr)
	}

	var got []portabletext.Node
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("parse output: %v\n%s", err, res.stdout)
	}

	want := []portabletext.Node{
		portabletext.ContainerNode("h1", portabletext.TextNode("Title")),
		portabletext.ContainerNode(portabletext.NodeParagraph,
			portabletext.TextNode("Hello "),
			portabletext.ContainerNode("strong", portabletext.TextNode("world")),
		),
		portabletext.ContainerNode("bullet_list",
			portabletext.ContainerNode(portabletext.NodeListItem,
				portabletext.TextNode("one"),
				portabletext.ContainerNode(portabletext.NodeListItem,
					portabletext.ContainerNode("bullet_list",
						portabletext.ContainerNode(portabletext.NodeListItem, portabletext.TextNode("one-a")),
					),
				),
			),
		),
		{Type: "image", Props: map[string]any{"alt": "Cat"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if res.stderr != "" {
		t.Errorf("expected empty stderr, got %q", res.stderr)
	}
}

func TestCLIFormatText(t *testing.T) {
	res := runCLI(t, `[
	  {"_type":"block","style":"normal","children":[{"_type":"span","text":"Hi","marks":["em"]}]},
	  {"_type":"divider","weight":2}
	]`, "format", "--output", "text")
	if res.err != nil {
		t.Fatalf("execute: %v", res.err)
	}

	want := "paragraph\n  em\n    text \"Hi\"\ndivider weight=2\n"
	if res.stdout != want {
		t.Errorf("got %q, want %q", res.stdout, want)
	}
}

func TestCLIFormatQuery(t *testing.T) {
	res := runCLI(t, harnessDocument, "format", "--output", "json", "--query", "[.[].type]")
	if res.err != nil {
		t.Fatalf("execute: %v", res.err)
	}

	var types []string
	if err := json.Unmarshal([]byte(res.stdout), &types); err != nil {
		t.Fatalf("parse output: %v\n%s", err, res.stdout)
	}
	want := []string{"h1", "paragraph", "bullet_list", "image"}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestCLIFormatAllowEmptyBlocks(t *testing.T) {
	res := runCLI(t, harnessDocument, "format", "--output", "json", "--allow-empty-blocks", "--query", "length")
	if res.err != nil {
		t.Fatalf("execute: %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != "5" {
		t.Errorf("expected 5 top-level nodes with blank paragraph kept, got %q", res.stdout)
	}

	res = runCLI(t, harnessDocument, "format", "--output", "json", "--query", "length")
	if res.err != nil {
		t.Fatalf("execute: %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != "4" {
		t.Errorf("expected 4 top-level nodes, got %q", res.stdout)
	}
}

func TestCLIFormatFileAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.json")
	doc := `{"result":{"body":[{"_type":"block","children":[{"_type":"span","text":"nested"}]}]}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	res := runCLI(t, "", "format", path, "--path", "result.body", "--output", "text")
	if res.err != nil {
		t.Fatalf("execute: %v", res.err)
	}
	if res.stdout != "paragraph\n  text \"nested\"\n" {
		t.Errorf("unexpected output %q", res.stdout)
	}
}

func TestCLIFormatDecodeErrorEnvelope(t *testing.T) {
	res := runCLI(t, `[{"_type":"block","children":"x"}]`, "format", "--output", "json")
	if res.err == nil {
		t.Fatal("expected decode error")
	}

	env := buildErrorEnvelope(res.err)
	errMap := env["error"].(map[string]interface{})
	if errMap["type"] != "decode" || errMap["path"] != "[0].children" {
		t.Errorf("unexpected envelope: %v", errMap)
	}
}

func TestCLIFormatEmptyDocumentNotice(t *testing.T) {
	res := runCLI(t, `[]`, "format", "--output", "text")
	if res.err != nil {
		t.Fatalf("execute: %v", res.err)
	}
	if res.stdout != "" {
		t.Errorf("expected no outline, got %q", res.stdout)
	}
	if !strings.Contains(res.stderr, "empty document") {
		t.Errorf("expected empty document notice, got %q", res.stderr)
	}
}

func TestCLIInvalidOutputFormat(t *testing.T) {
	res := runCLI(t, harnessDocument, "format", "--output", "xml")
	var uerr usageError
	if res.err == nil || !errors.As(res.err, &uerr) {
		t.Fatalf("expected usage error, got %v", res.err)
	}
}

func snapshotCLIState() func() {
	prevOutputFmt := outputFmt
	prevOutputType := outputType
	prevDebug := debug
	prevLogLevel := logLevel
	prevConfig := configFile
	prevEnvFile := envFile
	prevQueryExpr := queryExpr
	prevQueryFile := queryFile
	prevErrorFmt := errorFmt
	prevQuiet := quietFlag
	prevResultLimit := resultLimit
	prevResultSort := resultSort
	prevResultDesc := resultDesc
	prevAllowEmpty := formatAllowEmpty
	prevPath := formatPath
	prevActive := activeConfig
	prevDotenv := dotenv
	prevLogger := logger

	prevOut := rootCmd.OutOrStdout()
	prevErr := rootCmd.ErrOrStderr()
	prevIn := rootCmd.InOrStdin()
	prevCtx := rootCmd.Context()

	return func() {
		outputFmt = prevOutputFmt
		outputType = prevOutputType
		debug = prevDebug
		logLevel = prevLogLevel
		configFile = prevConfig
		envFile = prevEnvFile
		queryExpr = prevQueryExpr
		queryFile = prevQueryFile
		errorFmt = prevErrorFmt
		quietFlag = prevQuiet
		resultLimit = prevResultLimit
		resultSort = prevResultSort
		resultDesc = prevResultDesc
		formatAllowEmpty = prevAllowEmpty
		formatPath = prevPath
		activeConfig = prevActive
		dotenv = prevDotenv
		logger = prevLogger

		rootCmd.SetOut(prevOut)
		rootCmd.SetErr(prevErr)
		rootCmd.SetIn(prevIn)
		rootCmd.SetContext(prevCtx)
		rootCmd.SetArgs(nil)
		resetFlagChanges(rootCmd)
	}
}

// resetFlagChanges clears Changed on cmd and all of its subcommands so the
// next Execute resolves precedence from scratch.
func resetFlagChanges(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	reset := func(f *pflag.Flag) {
		f.Changed = false
		// cobra's own flags are not backed by restored globals.
		if f.Name == "version" || f.Name == "help" {
			_ = f.Value.Set(f.DefValue)
		}
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlagChanges(sub)
	}
}

func TestCLIFormatDebugLogging(t *testing.T) {
	res := runCLI(t, harnessDocument, "format", "--output", "json", "--log-level", "debug")
	if res.err != nil {
		t.Fatalf("execute: %v", res.err)
	}
	for _, want := range []string{"decoded input", "formatted document", "blocks_kept=5"} {
		if !strings.Contains(res.stderr, want) {
			t.Errorf("expected %q in debug log, got %q", want, res.stderr)
		}
	}
}

func TestCLIFormatKeepsOutOfRangeNumbers(t *testing.T) {
	res := runCLI(t, `[{"_type":"img","n":1e400,"id":9007199254740993}]`, "format", "--output", "json")
	if res.err != nil {
		t.Fatalf("execute: %v (stderr %q)", res.err, res.stderr)
	}
	for _, want := range []string{`"n": 1e400`, `"id": 9007199254740993`} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("expected %s in output, got %s", want, res.stdout)
		}
	}

	res = runCLI(t, `[{"_type":"img","id":9007199254740993}]`, "format", "--output", "json", "--query", ".[0].props.id")
	if res.err != nil {
		t.Fatalf("execute with query: %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != "9007199254740993" {
		t.Errorf("expected exact id from query, got %q", res.stdout)
	}
}
