package pdfsource

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFirstPageImageRejectsEmptyInput(t *testing.T) {
	_, err := ExtractFirstPageImage(nil)
	require.Error(t, err)
}

func TestExtractFirstPageImageRejectsGarbageBytes(t *testing.T) {
	_, err := ExtractFirstPageImage([]byte("not a pdf at all"))
	require.Error(t, err)
}

func TestImageIndexParsesSuffix(t *testing.T) {
	require.Equal(t, 1, imageIndex("page_1_image_1.png"))
	require.Equal(t, 2, imageIndex("page_1_image_2.jpg"))
	require.Equal(t, 0, imageIndex("not_a_page_file.png"))
}
