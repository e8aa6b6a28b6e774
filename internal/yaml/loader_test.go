package yaml

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

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return tmpDir
}

func TestLoadDesign(t *testing.T) {
	dir := writeFile(t, "design.yaml", `
cells:
  - name: AND2
    ports:
      - {name: a, type: input}
      - {name: y, type: output}

modules:
  - name: adder
    ports:
      - {name: clk, type: clock}
      - {name: a, type: input, width: 8}
      - {name: sum, type: output, msb: 8, lsb: 0}
    instances:
      - {name: u_and, of: AND2}
`)

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

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name: "unknown port type",
			src: `
modules:
  - name: m
    ports:
      - {name: p, type: tristate}
`,
			wantErr: "unknown port type",
		},
		{
			name: "width and range together",
			src: `
modules:
  - name: m
    ports:
      - {name: p, type: input, width: 8, msb: 7, lsb: 0}
`,
			wantErr: "mutually exclusive",
		},
		{
			name: "lsb without msb",
			src: `
modules:
  - name: m
    ports:
      - {name: p, type: input, lsb: 0}
`,
			wantErr: "must be set together",
		},
		{
			name: "malformed yaml",
			src: `
modules:
  - name: [
`,
			wantErr: "failed to decode YAML file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeFile(t, "design.yaml", tc.src)
			_, err := NewLoader().Load(context.Background(), dir)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadSkipsForeignFilePath(t *testing.T) {
	dir := writeFile(t, "design.hcl", `module "solo" {}`)

	model, err := NewLoader().Load(context.Background(), filepath.Join(dir, "design.hcl"))
	require.NoError(t, err)
	assert.Empty(t, model.Modules)
}

func TestLoadYmlExtension(t *testing.T) {
	dir := writeFile(t, "design.yml", `
modules:
  - name: solo
`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Modules, 1)
	assert.Equal(t, "solo", model.Modules[0].Name)
}
