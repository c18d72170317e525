package operation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/swcfix/pkg/log"
)

const (
	entitySource = "@ManyToOne(() => Order, (order) => order.items)\norder: Order;\n"
	entityFixed  = "import { Relation } from \"typeorm\";\n@ManyToOne(() => Order, (order) => order.items)\norder: Relation<Order>;\n"
	serviceSrc   = "constructor(@Inject(forwardRef(() => UserService)) private readonly users: UserService) {}\n"
	plainSource  = "export const answer = 42;\n"
)

// testContext carries a test-scoped zerolog logger and a silent console
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.TraceLevel).WithContext(context.Background())
	return log.NewContext(ctx, log.New(io.Discard, zerolog.Nop()))
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating dir for %s", name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing %s", name)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "reading %s", path)
	return string(data)
}

// 🔧 MockStore is a mock implementation of FileStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockStore) WriteFile(ctx context.Context, path string, data []byte) error {
	args := m.Called(ctx, path, data)
	return args.Error(0)
}

type operationFunc func(ctx context.Context) error

func (f operationFunc) Execute(ctx context.Context) error {
	return f(ctx)
}
