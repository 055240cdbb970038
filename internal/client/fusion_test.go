package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omenfeed-io/omen/pkg/omen"
)

func TestFusionClient_GetFile_CSV(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/fusion/files", request.URL.Path)
		assert.Equal(t, "/public/risklist/ip.csv", request.URL.Query().Get("path"))

		writer.Header().Set("Content-Type", "text/csv")
		_, _ = writer.Write([]byte("indicator,score\n1.2.3.4,99\n"))
	}))
	defer server.Close()

	fusion := NewFusionClient(newTestTransport(t, server.URL))

	wrapped, err := fusion.GetFile(context.Background(), "/public/risklist/ip.csv")
	require.NoError(t, err)

	csvResp, ok := wrapped.(*omen.CSVResponse)
	require.True(t, ok)

	records, err := csvResp.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1.2.3.4", "99"}, records[1])
}

func TestFusionClient_GetFile_Text(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "text/plain")
		_, _ = writer.Write([]byte("readme contents"))
	}))
	defer server.Close()

	fusion := NewFusionClient(newTestTransport(t, server.URL))

	wrapped, err := fusion.GetFile(context.Background(), "/public/readme.txt")
	require.NoError(t, err)

	textResp, ok := wrapped.(*omen.TextResponse)
	require.True(t, ok)
	assert.Equal(t, "readme contents", textResp.Text)
}
