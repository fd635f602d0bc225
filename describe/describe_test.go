package describe_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/describe"
)

const validReply = `{
  "description": "A LIFO container.",
  "theory": {
    "timeComplexity": "| Op | Avg |\n|---|---|\n| Push | O(1) |",
    "spaceComplexity": "O(n)",
    "useCases": "- undo",
    "realWorldExamples": "- call stack"
  }
}`

func TestParse(t *testing.T) {
	info, err := describe.Parse(validReply)
	require.NoError(t, err)
	assert.Equal(t, "A LIFO container.", info.Description)
	assert.Equal(t, "O(n)", info.Theory.SpaceComplexity)

	_, err = describe.Parse(`{"description": "x"}`)
	assert.ErrorIs(t, err, describe.ErrInvalidInfo)
	_, err = describe.Parse(`not json`)
	assert.ErrorIs(t, err, describe.ErrInvalidInfo)
}

func TestFetch_SuccessIsCached(t *testing.T) {
	var calls atomic.Int32
	var fallbacks []bool
	gen := describe.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		calls.Add(1)
		assert.Contains(t, prompt, "Stack data structure")
		return validReply, nil
	})
	p := describe.NewProvider(gen, describe.WithObserver(func(fb bool) { fallbacks = append(fallbacks, fb) }))

	first := p.Fetch(context.Background(), "Stack")
	second := p.Fetch(context.Background(), "Stack")
	assert.Equal(t, first, second)
	assert.False(t, first.IsFallback())
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []bool{false, false}, fallbacks)
}

func TestFetch_FailuresFallBack(t *testing.T) {
	cases := map[string]describe.Generator{
		"nil generator": nil,
		"network error": describe.GeneratorFunc(func(context.Context, string) (string, error) {
			return "", errors.New("dial tcp: refused")
		}),
		"bad shape": describe.GeneratorFunc(func(context.Context, string) (string, error) {
			return `{"theory": 3}`, nil
		}),
		"timeout": describe.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}),
	}
	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			p := describe.NewProvider(gen, describe.WithTimeout(10*time.Millisecond))
			info := p.Fetch(context.Background(), "Queue")
			assert.True(t, info.IsFallback())
			assert.Equal(t, "N/A", info.Theory.UseCases)
		})
	}
}

func TestNewGeminiGenerator_RequiresKey(t *testing.T) {
	_, err := describe.NewGeminiGenerator(context.Background(), "", "")
	assert.ErrorIs(t, err, describe.ErrMissingAPIKey)
}
