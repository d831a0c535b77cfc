package engine

import (
	"io"
	"os"
	"testing"

	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}
