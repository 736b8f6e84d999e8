//go:build e2e

package e2e_test

import (
	"encoding/binary"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

const e2eVersion = "0.0.0-e2e"

var formaBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "forma-e2e-*")
	if err != nil {
		panic(err)
	}
	formaBinary = filepath.Join(tmpDir, "forma")

	ldflags := "-X go.trai.ch/forma/internal/build.Version=" + e2eVersion +
		" -X go.trai.ch/forma/internal/build.Commit=e2e"
	//nolint:gosec // static arguments
	cmd := exec.Command("go", "build", "-ldflags", ldflags, "-o", formaBinary, "./cmd/forma")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		_ = os.RemoveAll(tmpDir)
		panic("failed to build forma: " + err.Error())
	}

	code := m.Run()
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setup,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"stl": checkSTL,
		},
	})
}

func setup(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("PATH", filepath.Dir(formaBinary)+string(os.PathListSeparator)+env.Getenv("PATH"))

	home := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(home, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", home)
	return nil
}

// checkSTL implements "stl file [min-triangles]": the file must be a binary
// STL whose header triangle count matches its size.
func checkSTL(ts *testscript.TestScript, neg bool, args []string) {
	if len(args) < 1 || len(args) > 2 {
		ts.Fatalf("usage: stl file [min-triangles]")
	}
	data, err := os.ReadFile(ts.MkAbs(args[0]))
	ts.Check(err)

	const header, record = 84, 50
	ok := len(data) >= header
	var count uint32
	if ok {
		count = binary.LittleEndian.Uint32(data[80:84])
		ok = len(data) == header+record*int(count)
	}
	if ok && len(args) == 2 {
		minCount, err := strconv.Atoi(args[1])
		ts.Check(err)
		ok = int(count) >= minCount
	}

	switch {
	case neg && ok:
		ts.Fatalf("%s is a valid STL with %d triangles", args[0], count)
	case !neg && !ok:
		ts.Fatalf("%s is not a valid STL (%d bytes, header count %d)", args[0], len(data), count)
	}
}
