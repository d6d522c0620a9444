package translation

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalacademy/platform/internal/lang"
)

// countingBackend records how many times the backend was invoked.
type countingBackend struct {
	calls atomic.Int64
	fail  bool
}

func (b *countingBackend) Translate(_ context.Context, text string, _, target lang.Code) (string, error) {
	b.calls.Add(1)
	if b.fail {
		return "", fmt.Errorf("backend unavailable")
	}
	return fmt.Sprintf("[%s] %s", target, text), nil
}

func newTestService(backend Backend) *Service {
	return NewService(NewCache(0, 0, 0), backend)
}

func TestTranslateIdentityShortCircuit(t *testing.T) {
	backend := &countingBackend{}
	svc := newTestService(backend)

	got := svc.Translate(context.Background(), "Hello World", lang.English, lang.English)
	assert.Equal(t, "Hello World", got)
	assert.Zero(t, backend.calls.Load(), "identity translation must not touch the backend")
}

func TestTranslateCachesBackendResults(t *testing.T) {
	backend := &countingBackend{}
	svc := newTestService(backend)
	ctx := context.Background()

	first := svc.Translate(ctx, "Hello", lang.English, lang.Spanish)
	require.Equal(t, "[es] Hello", first)
	require.EqualValues(t, 1, backend.calls.Load())

	second := svc.Translate(ctx, "Hello", lang.English, lang.Spanish)
	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, backend.calls.Load(), "second identical call must be a cache hit")
}

func TestTranslateBackendFailureReturnsSourceText(t *testing.T) {
	backend := &countingBackend{fail: true}
	svc := newTestService(backend)

	got := svc.Translate(context.Background(), "Hello", lang.English, lang.Russian)
	assert.Equal(t, "Hello", got, "backend failure degrades to passthrough")

	// Failures are not cached: the next call tries the backend again.
	svc.Translate(context.Background(), "Hello", lang.English, lang.Russian)
	assert.EqualValues(t, 2, backend.calls.Load())
}

func TestTranslateDetectsMissingSourceLanguage(t *testing.T) {
	backend := &countingBackend{}
	svc := newTestService(backend)

	// Spanish input with an empty source and a Spanish target: detection makes
	// this an identity translation.
	text := "Bienvenido a la introducción a la inteligencia artificial, un curso completo"
	got := svc.Translate(context.Background(), text, "", lang.Spanish)
	assert.Equal(t, text, got)
	assert.Zero(t, backend.calls.Load())
}

func TestTranslateEmptyText(t *testing.T) {
	backend := &countingBackend{}
	svc := newTestService(backend)

	assert.Equal(t, "", svc.Translate(context.Background(), "", lang.English, lang.French))
	assert.Zero(t, backend.calls.Load())
}

func TestStaticBackendKnownAndUnknownStrings(t *testing.T) {
	backend := NewStaticBackend()
	ctx := context.Background()

	got, err := backend.Translate(ctx, "Machine Learning Basics", lang.English, lang.Spanish)
	require.NoError(t, err)
	assert.Equal(t, "Fundamentos de Aprendizaje Automático", got)

	got, err = backend.Translate(ctx, "Something unheard of", lang.English, lang.Chinese)
	require.NoError(t, err)
	assert.Equal(t, "[zh] Something unheard of", got)
}

type scriptedChat struct {
	reply string
	err   error
}

func (s *scriptedChat) SimpleChat(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

func TestLLMBackend(t *testing.T) {
	backend := NewLLMBackend(&scriptedChat{reply: "  Hola Mundo \n"})
	got, err := backend.Translate(context.Background(), "Hello World", lang.English, lang.Spanish)
	require.NoError(t, err)
	assert.Equal(t, "Hola Mundo", got)

	backend = NewLLMBackend(&scriptedChat{err: fmt.Errorf("boom")})
	_, err = backend.Translate(context.Background(), "Hello", lang.English, lang.Spanish)
	assert.Error(t, err)

	backend = NewLLMBackend(&scriptedChat{reply: "   "})
	_, err = backend.Translate(context.Background(), "Hello", lang.English, lang.Spanish)
	assert.Error(t, err)
}
