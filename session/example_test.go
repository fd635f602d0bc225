package session_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/structviz/config"
	"github.com/katalvlaran/structviz/session"
)

func ExampleSession_Apply() {
	cfg := config.Default()
	cfg.Animation = config.AnimationConfig{}
	s, _ := session.New(cfg)
	ctx := context.Background()

	out, _ := s.Apply(ctx, "dsu", "union", "1", "2")
	fmt.Println(out.Result, out.CanUndo)

	out, _ = s.Apply(ctx, "dsu", "union", "1", "ten")
	fmt.Println(out.Ignored)

	moved, _ := s.Undo("dsu")
	v, _ := s.View("dsu")
	fmt.Println(moved, v.State)
	// Output:
	// true true
	// true
	// true [0 1 2 3 4 5 6 7 8 9]
}
