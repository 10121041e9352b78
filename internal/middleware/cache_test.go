package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureWriterWithinLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 64}

	n, err := cw.Write([]byte(`{"items":[]}`))
	assert.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.False(t, cw.overflowed())
	assert.Equal(t, `{"items":[]}`, cw.buf.String())
}

func TestCaptureWriterOverflowNeverCacheable(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}

	// Client still receives the complete response across writes.
	_, err := cw.Write([]byte(`{"items"`))
	assert.NoError(t, err)
	_, err = cw.Write([]byte(`:[1,2,3]}`))
	assert.NoError(t, err)
	assert.Equal(t, `{"items":[1,2,3]}`, rec.Body.String())

	// The capture is clipped, so it must be flagged unstorable.
	assert.True(t, cw.overflowed())
	assert.Less(t, cw.buf.Len(), rec.Body.Len())
}

func TestCaptureWriterUnlimited(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 0}

	_, err := cw.Write(make([]byte, 4096))
	assert.NoError(t, err)
	assert.False(t, cw.overflowed())
	assert.Equal(t, 4096, cw.buf.Len())
}

func TestEncodeDecodePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	payload, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	assert.NoError(t, err)

	status, gotHdr, body, ok := decodePayload(payload)
	assert.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(body))
}
