package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cascade/cmd/cascade/commands"
	"go.trai.ch/cascade/internal/adapters/export"
	"go.trai.ch/cascade/internal/adapters/fingerprint"
	"go.trai.ch/cascade/internal/app"
	"go.trai.ch/cascade/internal/build"
	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/internal/core/ports/mocks"
	"go.trai.ch/cascade/internal/engine/lookup"
	"go.uber.org/mock/gomock"
)

type harness struct {
	loader *mocks.MockSpecLoader
	store  *mocks.MockCheckStore
	out    *bytes.Buffer
	cli    *commands.CLI
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		loader: mocks.NewMockSpecLoader(ctrl),
		store:  mocks.NewMockCheckStore(ctrl),
		out:    &bytes.Buffer{},
	}
	a := app.New(h.loader, lookup.New[uint64](), fingerprint.NewHasher(), h.store, mocks.NewMockLogger(ctrl)).
		WithWorkers(1)
	h.cli = commands.New(a)
	return h
}

// run executes the CLI with args; cobra writes command output to the buffer set on the root.
func (h *harness) run(args ...string) error {
	h.cli.SetArgs(args)
	return h.cli.ExecuteWithOutput(context.Background(), h.out)
}

func orderSpec() domain.TypeSpec {
	return domain.Describe("Order").
		Property("Quantity").
		Property("Price").
		Property("Total", domain.NotifiedBy("Quantity", "Price")).
		Spec()
}

func brokenSpec() domain.TypeSpec {
	return domain.Describe("Broken").
		Property("A", domain.Notifies("Missing")).
		Spec()
}

func TestCheck_Success(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load("cascade.yaml").Return([]domain.TypeSpec{orderSpec()}, nil)
	h.store.EXPECT().Get("Order").Return(nil, nil)
	h.store.EXPECT().Put(gomock.Any()).Return(nil)

	require.NoError(t, h.run("check"))
	assert.Equal(t, "Order\tok\n", h.out.String())
}

func TestCheck_Failure(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load("decls.yaml").Return([]domain.TypeSpec{orderSpec(), brokenSpec()}, nil)
	h.store.EXPECT().Get(gomock.Any()).Return(nil, nil).Times(2)
	h.store.EXPECT().Put(gomock.Any()).Return(nil).Times(2)

	err := h.run("-c", "decls.yaml", "check")
	require.ErrorIs(t, err, domain.ErrCheckFailed)
	assert.Contains(t, h.out.String(), "Order\tok\n")
	assert.Contains(t, h.out.String(), "Broken\tmember 'Broken.Missing' not found")
}

func TestExpand(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load("cascade.yaml").Return([]domain.TypeSpec{orderSpec()}, nil)

	require.NoError(t, h.run("expand", "Order", "Price"))
	assert.Equal(t, "Price\nTotal\n", h.out.String())
}

func TestExpand_RequiresTwoArgs(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("expand", "Order"))
}

func TestGraph(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load("cascade.yaml").Return([]domain.TypeSpec{orderSpec()}, nil)

	require.NoError(t, h.run("graph", "Order"))
	assert.Contains(t, h.out.String(), `digraph "Order" {`)
	assert.Contains(t, h.out.String(), `"Quantity" -> "Total";`)
}

func TestGraph_Mermaid(t *testing.T) {
	h := newHarness(t)

	h.loader.EXPECT().Load("cascade.yaml").Return([]domain.TypeSpec{orderSpec()}, nil)

	require.NoError(t, h.run("graph", "Order", "--format", "mermaid"))
	assert.Contains(t, h.out.String(), "flowchart LR")
}

func TestGraph_UnknownFormat(t *testing.T) {
	h := newHarness(t)

	err := h.run("graph", "Order", "-f", "svg")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("version"))
	assert.Equal(t, "cascade version "+build.Version+"\n", h.out.String())
}
