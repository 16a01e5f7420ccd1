package memory_test

import (
	"testing"

	"github.com/caddan/ordna/pkg/adapters/memory"
	"github.com/caddan/ordna/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunHistoryStoreContract(t, memory.NewStore())
}
