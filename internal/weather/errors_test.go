package weather

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Not found is normalized",
			err:  &Error{Kind: KindNotFound, Op: "geocode", Msg: "anything", Err: ErrCityNotFound},
			want: "City not found. Please try again.",
		},
		{
			name: "Upstream mentioning a city is shown verbatim",
			err:  &Error{Kind: KindUpstream, Op: "geocode", Msg: "Failed to fetch city coordinates."},
			want: "Failed to fetch city coordinates.",
		},
		{
			name: "Transport text is surfaced",
			err:  transportError("current weather", errors.New("dial tcp: connection refused")),
			want: "dial tcp: connection refused",
		},
		{
			name: "Wrapped pipeline error keeps its kind",
			err:  fmt.Errorf("lookup failed: %w", &Error{Kind: KindNotFound, Msg: "x"}),
			want: "City not found. Please try again.",
		},
		{
			name: "Pipeline error without message",
			err:  &Error{Kind: KindUpstream},
			want: "Something went wrong. Please try again.",
		},
		{
			name: "Foreign error mentioning a city is not rerouted",
			err:  errors.New("upstream rejected city Lisboa"),
			want: "upstream rejected city Lisboa",
		},
		{
			name: "Foreign error without text",
			err:  errors.New(""),
			want: "Something went wrong. Please try again.",
		},
		{
			name: "Nil",
			err:  nil,
			want: "Something went wrong. Please try again.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UserMessage(tc.err))
		})
	}
}

func TestError_Format(t *testing.T) {
	err := &Error{Kind: KindUpstream, Op: "geocode", Msg: "Failed to fetch city coordinates."}
	assert.Equal(t, "geocode: Failed to fetch city coordinates.", err.Error())

	wrapped := &Error{Kind: KindNotFound, Op: "geocode", Msg: msgCityNotFound, Err: ErrCityNotFound}
	assert.Equal(t, "geocode: City not found. Please try again.: no results found for the given city", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrCityNotFound)

	transport := transportError("geocode", errors.New("boom"))
	assert.Equal(t, "geocode: boom", transport.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
	assert.Equal(t, KindMalformed, KindOf(fmt.Errorf("ctx: %w", &Error{Kind: KindMalformed})))
	assert.False(t, IsKind(nil, KindUnknown))
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
