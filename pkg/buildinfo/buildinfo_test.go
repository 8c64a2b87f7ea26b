package buildinfo

import (
	"fmt"
	"runtime"
	"testing"

	"src.comlin.dev/pkg/prog"
	"src.comlin.dev/pkg/prog/progtest"
)

func TestVersion(t *testing.T) {
	f := progtest.Setup(t)
	exit := prog.Run(f.Fds(), []string{"comlin", "-version"}, Program{})
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, 1, Version+VersionSuffix+"\n")
}

func TestBuildInfo(t *testing.T) {
	f := progtest.Setup(t)
	exit := prog.Run(f.Fds(), []string{"comlin", "-buildinfo"}, Program{})
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, 1, fmt.Sprintf(
		"Version: %v\nGo version: %v\n", Version+VersionSuffix, runtime.Version()))
}

func TestBuildInfo_JSON(t *testing.T) {
	f := progtest.Setup(t)
	exit := prog.Run(f.Fds(), []string{"comlin", "-buildinfo", "-json"}, Program{})
	if exit != 0 {
		t.Errorf("exit = %d, want 0", exit)
	}
	f.TestOut(t, 1, fmt.Sprintf(
		`{"version":%s,"goversion":%s}`+"\n",
		quoteJSON(Version+VersionSuffix), quoteJSON(runtime.Version())))
}

func TestNotSuitableWithoutFlag(t *testing.T) {
	f := progtest.Setup(t)
	exit := prog.Run(f.Fds(), []string{"comlin"}, Program{})
	if exit != 2 {
		t.Errorf("exit = %d, want 2", exit)
	}
	f.TestOut(t, 2, "internal error: no suitable subprogram\n")
}
