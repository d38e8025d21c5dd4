package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderLeaf(t *testing.T) {
	assert.Equal(t, "Tickets en general", folderLeaf("Carpeta A/Tickets en general/"))
	assert.Equal(t, "Carpeta A", folderLeaf("Carpeta A/"))
	assert.Equal(t, "Carpeta A", folderLeaf("Carpeta A"))
}

func TestObjectBaseName(t *testing.T) {
	assert.Equal(t, "ticket-01.pdf", objectBaseName("Carpeta A/Tickets en general/ticket-01.pdf"))
	assert.Equal(t, "ticket-01.pdf", objectBaseName("ticket-01.pdf"))
}

func TestNewRepository_InvalidEndpoint(t *testing.T) {
	_, err := NewRepository(Config{Endpoint: "http://not a host"}, nil)
	require.Error(t, err)
}
