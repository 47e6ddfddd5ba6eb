package tests

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildBloomBuddyBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "bloombuddy")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build bloombuddy binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runBloomBuddy(t *testing.T, binPath, dataDir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binPath, args...)
	cmd.Env = append(os.Environ(),
		"XDG_DATA_HOME="+dataDir,
		"XDG_CONFIG_HOME="+filepath.Join(dataDir, "config"),
		"HOME="+dataDir,
	)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run bloombuddy command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

type payload struct {
	Stage      string `json:"stage"`
	StageIndex int    `json:"stage_index"`
	Day        int    `json:"day"`
	IsWilted   bool   `json:"is_wilted"`
	DaysIdle   int    `json:"days_idle"`
	Image      string `json:"image"`
}

func TestCLIWidgetLifecycle(t *testing.T) {
	binPath := buildBloomBuddyBinary(t)
	dataDir := t.TempDir()

	steps := []struct {
		args []string
		want payload
	}{
		{[]string{"--date", "2026-08-01"}, payload{Stage: "seed", Day: 1, Image: "assets/plant_seed.png"}},
		{[]string{"--date", "2026-08-01"}, payload{Stage: "seed", Day: 1, Image: "assets/plant_seed.png"}},
		{[]string{"--date", "2026-08-04"}, payload{Stage: "sprout", StageIndex: 1, Day: 4, IsWilted: true, DaysIdle: 3, Image: "assets/plant_sprout.png"}},
		{[]string{"--date", "2026-08-04", "--water"}, payload{Stage: "sprout", StageIndex: 1, Day: 4, Image: "assets/plant_sprout.png"}},
		{[]string{"--date", "2026-08-30"}, payload{Stage: "bloom", StageIndex: 3, Day: 30, IsWilted: true, DaysIdle: 26, Image: "assets/plant_bloom.png"}},
	}
	for i, step := range steps {
		stdout, stderr, exit := runBloomBuddy(t, binPath, dataDir, step.args...)
		if exit != 0 {
			t.Fatalf("step %d: exit=%d stderr=%s", i, exit, stderr)
		}
		var got payload
		if err := json.Unmarshal([]byte(stdout), &got); err != nil {
			t.Fatalf("step %d: decode payload %q: %v", i, stdout, err)
		}
		if got != step.want {
			t.Fatalf("step %d: expected %+v, got %+v", i, step.want, got)
		}
	}

	if _, err := os.Stat(filepath.Join(dataDir, "plasma-bloombuddy", "data.json")); err != nil {
		t.Fatalf("expected record at the widget's data path: %v", err)
	}
}

func TestCLICorruptRecordKeepsWidgetAlive(t *testing.T) {
	binPath := buildBloomBuddyBinary(t)
	dataDir := t.TempDir()
	recordDir := filepath.Join(dataDir, "plasma-bloombuddy")
	if err := os.MkdirAll(recordDir, 0o755); err != nil {
		t.Fatalf("create record dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(recordDir, "data.json"), []byte("not json at all"), 0o644); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}

	stdout, stderr, exit := runBloomBuddy(t, binPath, dataDir, "--date", "2026-08-01")
	if exit != 0 {
		t.Fatalf("expected exit 0 on corrupt record, got %d stderr=%s", exit, stderr)
	}
	if !strings.Contains(stdout, `"stage":"seed"`) {
		t.Fatalf("expected default payload, got %q", stdout)
	}
}

func TestCLIRejectsUnknownStore(t *testing.T) {
	binPath := buildBloomBuddyBinary(t)
	_, stderr, exit := runBloomBuddy(t, binPath, t.TempDir(), "--store", "redis")
	if exit == 0 {
		t.Fatalf("expected non-zero exit for unknown store")
	}
	if !strings.Contains(stderr, `invalid --store "redis"`) {
		t.Fatalf("expected store validation error in stderr, got: %s", stderr)
	}
}
