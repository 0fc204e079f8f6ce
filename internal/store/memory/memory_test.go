package memory

import (
	"testing"

	"github.com/iburimskiy/bizpanel/internal/store"
	"github.com/iburimskiy/bizpanel/internal/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}
