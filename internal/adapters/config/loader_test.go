package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cascade/internal/adapters/config"
	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, config.DefaultFilename)
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configPath
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockLogger) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return config.NewLoader(log), log
}

func TestLoad_Success(t *testing.T) {
	path := writeConfig(t, `
version: "1"
types:
  - name: Person
    properties:
      - name: First
        notifies: [FullName]
      - name: Last
        notifies: [FullName]
      - name: FullName
  - name: Order
    properties:
      - name: Quantity
      - name: Price
      - name: Total
        notifiedBy: [Quantity, Price]
`)
	loader, _ := newLoader(t)

	specs, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	assert.Equal(t, "Person", specs[0].Name)
	assert.Equal(t, "Order", specs[1].Name)

	g, err := domain.BuildGraph(specs[1])
	require.NoError(t, err)

	var cascade []string
	for n := range g.Expand(domain.NewPropertyName("Price")) {
		cascade = append(cascade, n.String())
	}
	assert.Equal(t, []string{"Price", "Total"}, cascade)
}

func TestLoad_Directory(t *testing.T) {
	path := writeConfig(t, `
types:
  - name: T
    properties:
      - name: A
`)
	loader, _ := newLoader(t)

	specs, err := loader.Load(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.Equal(t, "T", specs[0].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Contains(t, zErr.Metadata()["path"], "nope.yaml")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "types: [unterminated")
	loader, _ := newLoader(t)

	_, err := loader.Load(path)
	assert.Error(t, err)
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	path := writeConfig(t, `version: "2"`)
	loader, _ := newLoader(t)

	_, err := loader.Load(path)
	assert.ErrorIs(t, err, config.ErrUnsupportedVersion)
}

func TestLoad_DuplicateType(t *testing.T) {
	path := writeConfig(t, `
types:
  - name: T
    properties: [{name: A}]
  - name: T
    properties: [{name: B}]
`)
	loader, _ := newLoader(t)

	_, err := loader.Load(path)
	require.ErrorIs(t, err, config.ErrDuplicateType)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok)
	assert.Equal(t, "T", zErr.Metadata()["type"])
}

func TestLoad_MissingNames(t *testing.T) {
	loader, _ := newLoader(t)

	_, err := loader.Load(writeConfig(t, `
types:
  - properties: [{name: A}]
`))
	assert.ErrorIs(t, err, config.ErrMissingName)

	_, err = loader.Load(writeConfig(t, `
types:
  - name: T
    properties: [{notifies: [A]}]
`))
	assert.ErrorIs(t, err, config.ErrMissingName)
}

func TestLoad_WarnsOnEmptyType(t *testing.T) {
	path := writeConfig(t, `
types:
  - name: Empty
`)
	loader, log := newLoader(t)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	specs, err := loader.Load(path)
	require.NoError(t, err)
	assert.Empty(t, specs[0].Properties)
}

func TestLoad_RepeatedPropertyMerges(t *testing.T) {
	path := writeConfig(t, `
types:
  - name: T
    properties:
      - name: A
        notifies: [B]
      - name: B
      - name: A
        notifies: [C]
      - name: C
`)
	loader, _ := newLoader(t)

	specs, err := loader.Load(path)
	require.NoError(t, err)
	require.Len(t, specs[0].Properties, 3)

	g, err := domain.BuildGraph(specs[0])
	require.NoError(t, err)
	assert.Len(t, g.Dependents(domain.NewPropertyName("A")), 2)
}
