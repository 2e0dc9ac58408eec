package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/jumpbble/internal/api"
	"github.com/mcoot/jumpbble/internal/factory"
	"github.com/mcoot/jumpbble/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	dictionary string
}

func newCLIRunner(t *testing.T) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "jumpbble-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/jumpbble")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		dictionary: writeDictionary(t),
	}
}

func (r *cliRunner) command(stdin string, args ...string) *exec.Cmd {
	fullArgs := append([]string{"--output", "json"}, args...)
	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Stdin = strings.NewReader(stdin)
	// Keep a developer's .env and JUMPBBLE_* settings out of the test
	cmd.Dir = os.TempDir()
	cmd.Env = []string{"PATH=" + os.Getenv("PATH"), "HOME=" + os.Getenv("HOME")}
	return cmd
}

// run returns stdout only; logs on stderr are not part of the JSON output
func (r *cliRunner) run(stdin string, args ...string) (string, error) {
	cmd := r.command(stdin, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return string(out) + stderr.String(), err
	}
	return string(out), nil
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func writeDictionary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(factory.TestWords, "\n")), 0o644))
	return path
}

func freeAddr(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	return addr
}

// startTestServer runs the API in-process on a free port
func startTestServer(t *testing.T) string {
	t.Helper()

	app, err := factory.New(context.Background(), factory.Config{
		DictionaryPath: writeDictionary(t),
		Logger:         testutil.NopLogger(),
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            testutil.NopLogger(),
		GameController:    app.GameController,
		BotService:        app.BotService,
		DictionaryService: app.DictionaryService,
		Storage:           app.Storage,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Addr = "127.0.0.1:0"
	server := api.NewServer(router, serverConfig, testutil.NopLogger())
	require.NoError(t, server.Listen())

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })

	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type healthResponse struct {
	Status      string `json:"status"`
	ActiveGames int    `json:"active_games"`
	Dictionary  bool   `json:"dictionary_loaded"`
}

type summaryResponse struct {
	GameID   string   `json:"game_id"`
	Strategy string   `json:"strategy"`
	Moves    int      `json:"moves"`
	Score    int      `json:"score"`
	Words    []string `json:"words"`
}

type gameResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Turn  int    `json:"turn"`
	Board struct {
		Size  int        `json:"size"`
		Cells [][]string `json:"cells"`
	} `json:"board"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t)

	output, err := cli.run("", "health", "--server", serverURL)
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Dictionary)
}

func TestCLI_Simulate(t *testing.T) {
	cli := newCLIRunner(t)

	output, err := cli.run("", "--dictionary", cli.dictionary, "--seed", "11", "--size", "9", "simulate", "--strategy", "greedy")
	require.NoError(t, err, "output: %s", output)

	var summary summaryResponse
	require.NoError(t, json.Unmarshal([]byte(output), &summary))
	assert.Equal(t, "greedy", summary.Strategy)
	assert.Equal(t, 100, summary.Moves)

	// The same seed replays the same game
	again, err := cli.run("", "--dictionary", cli.dictionary, "--seed", "11", "--size", "9", "simulate", "--strategy", "greedy")
	require.NoError(t, err)
	var replay summaryResponse
	require.NoError(t, json.Unmarshal([]byte(again), &replay))
	assert.Equal(t, summary.Score, replay.Score)
	assert.Equal(t, summary.Words, replay.Words)
}

func TestCLI_RemotePlay(t *testing.T) {
	serverURL := startTestServer(t)
	cli := newCLIRunner(t)

	output, err := cli.run("quit\n", "play", "--server", serverURL, "--size", "7")
	require.NoError(t, err, "output: %s", output)

	dec := json.NewDecoder(strings.NewReader(output))
	var g gameResponse
	require.NoError(t, dec.Decode(&g))
	assert.Equal(t, "playing", g.State)
	assert.Equal(t, 7, g.Board.Size)
	assert.Equal(t, "@", g.Board.Cells[3][3])
}

func TestCLI_WordsCheck(t *testing.T) {
	cli := newCLIRunner(t)

	output, err := cli.run("", "--dictionary", cli.dictionary, "words", "check", "stone", "qzx")
	require.NoError(t, err, "output: %s", output)

	var verdicts map[string]bool
	require.NoError(t, json.Unmarshal([]byte(output), &verdicts))
	assert.Equal(t, map[string]bool{"stone": true, "qzx": false}, verdicts)
}

func TestCLI_Serve(t *testing.T) {
	cli := newCLIRunner(t)
	addr := freeAddr(t)

	cmd := cli.command("", "--dictionary", cli.dictionary, "serve", "--addr", addr)
	require.NoError(t, cmd.Start())
	defer func() { _ = cmd.Process.Kill() }()

	waitForServer(t, "http://"+addr+"/api/v1/health")

	require.NoError(t, cmd.Process.Signal(os.Interrupt))
	require.NoError(t, cmd.Wait())
}
