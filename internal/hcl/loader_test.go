package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/netgridgo/internal/config"
	"github.com/vk/netgridgo/internal/modreg"
	"github.com/vk/netgridgo/internal/port"
)

// writeFiles lays out the given relative path → content map under a fresh
// temp dir and returns its root.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return tmpDir
}

func TestLoadDesign(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"design.hcl": `
module "adder" {
  port "clk" {
    type = "clock"
  }
  port "a" {
    type  = "input"
    width = 8
  }
  port "sum" {
    type = "output"
    msb  = 8
    lsb  = 0
  }

  instance "u_and" {
    of = "AND2"
  }
}

cell "AND2" {
  port "a" {
    type = "input"
  }
  port "y" {
    type = "output"
  }
}
`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	expected := &config.Model{
		Cells: []*config.CellDefinition{
			{
				Name: "AND2",
				Ports: []*config.PortDefinition{
					{Port: port.New("a"), Type: modreg.InputPort},
					{Port: port.New("y"), Type: modreg.OutputPort},
				},
			},
		},
		Modules: []*config.ModuleDefinition{
			{
				Name: "adder",
				Ports: []*config.PortDefinition{
					{Port: port.New("clk"), Type: modreg.ClockPort},
					{Port: port.NewWidth("a", 8), Type: modreg.InputPort},
					{Port: port.NewRange("sum", 8, 0), Type: modreg.OutputPort},
				},
				Instances: []*config.InstanceDefinition{
					{Name: "u_and", Of: "AND2"},
				},
			},
		},
	}

	if diff := cmp.Diff(expected, model); diff != "" {
		t.Errorf("model mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPortWithOnlyTypeIsSingleBit(t *testing.T) {
	// Omitted optional attributes must not register as present: a port
	// block carrying nothing but a type decodes as a plain single bit.
	dir := writeFiles(t, map[string]string{
		"clk.hcl": `
module "adder" {
  port "clk" {
    type = "clock"
  }
}
`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Modules, 1)
	require.Len(t, model.Modules[0].Ports, 1)

	pd := model.Modules[0].Ports[0]
	assert.Equal(t, port.New("clk"), pd.Port)
	assert.Equal(t, modreg.ClockPort, pd.Type)
	assert.Equal(t, 1, pd.Port.Width())
}

func TestLoadWidthExpression(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bus.hcl": `
module "bus" {
  port "data" {
    type  = "input"
    width = 4 * 8
  }
}
`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Modules, 1)
	require.Len(t, model.Modules[0].Ports, 1)
	assert.Equal(t, 32, model.Modules[0].Ports[0].Port.Width())
}

func TestLoadMergesMultipleFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"cells/and.hcl":   `cell "AND2" {}`,
		"design/top.hcl":  `module "top" {}`,
		"design/leaf.hcl": `module "leaf" {}`,
	})

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, model.Cells, 1)
	assert.Len(t, model.Modules, 2)
}

func TestLoadSingleFilePath(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"one.hcl": `module "solo" {}`,
	})

	model, err := NewLoader().Load(context.Background(), filepath.Join(dir, "one.hcl"))
	require.NoError(t, err)
	require.Len(t, model.Modules, 1)
	assert.Equal(t, "solo", model.Modules[0].Name)
}

func TestLoadSkipsForeignFilePath(t *testing.T) {
	// A direct path to a file of another format yields nothing rather
	// than a parse attempt, so stacking loaders over one path is safe.
	dir := writeFiles(t, map[string]string{
		"design.yaml": `modules: [{name: solo}]`,
	})

	model, err := NewLoader().Load(context.Background(), filepath.Join(dir, "design.yaml"))
	require.NoError(t, err)
	assert.Empty(t, model.Modules)
}

func TestLoadMissingPathIsNotAnError(t *testing.T) {
	model, err := NewLoader().Load(context.Background(), "/does/not/exist")
	require.NoError(t, err)
	assert.Empty(t, model.Modules)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name: "unknown port type",
			src: `
module "m" {
  port "p" {
    type = "bidir"
  }
}
`,
			wantErr: "unknown port type",
		},
		{
			name: "width and range together",
			src: `
module "m" {
  port "p" {
    type  = "input"
    width = 8
    msb   = 7
    lsb   = 0
  }
}
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "msb without lsb",
			src: `
module "m" {
  port "p" {
    type = "input"
    msb  = 7
  }
}
`,
			wantErr: "must be set together",
		},
		{
			name: "zero width",
			src: `
module "m" {
  port "p" {
    type  = "input"
    width = 0
  }
}
`,
			wantErr: "width must be at least 1",
		},
		{
			name: "instance without target",
			src: `
module "m" {
  instance "u0" {
    of = ""
  }
}
`,
			wantErr: "'of' cannot be empty",
		},
		{
			name:    "malformed hcl",
			src:     `module "m" {`,
			wantErr: "failed to parse HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFiles(t, map[string]string{"design.hcl": tc.src})
			_, err := NewLoader().Load(context.Background(), dir)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
