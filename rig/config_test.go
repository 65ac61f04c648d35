package rig

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/mocapkit/bvhrig/geom"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.yaml")
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadImportConfig(t *testing.T) {
	path := writeConfig(t, "scale: 0.1\ndefaultRotationOrder: ZXY\nnamePrefix: mocap_\n")
	conf, err := LoadImportConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := conf.Builder()
	if err != nil {
		t.Fatal(err)
	}
	if b.Scale != 0.1 {
		t.Error("scale: ", b.Scale)
	}
	if b.DefaultRotationOrder != geom.RotationOrderZXY {
		t.Error("order: ", b.DefaultRotationOrder)
	}
	if b.NamePrefix != "mocap_" {
		t.Error("prefix: ", b.NamePrefix)
	}
}

func TestImportConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")
	conf, err := LoadImportConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := conf.Builder()
	if err != nil {
		t.Fatal(err)
	}
	if b.Scale != 1 || b.DefaultRotationOrder != geom.RotationOrderXYZ || b.NamePrefix != "" {
		t.Error("defaults: ", b)
	}
}

func TestImportConfigInvalidOrder(t *testing.T) {
	path := writeConfig(t, "defaultRotationOrder: XXZ\n")
	conf, err := LoadImportConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := conf.Builder(); err == nil {
		t.Error("Builder() should fail for invalid order")
	}
}

func TestLoadImportConfigMissingFile(t *testing.T) {
	if _, err := LoadImportConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}
