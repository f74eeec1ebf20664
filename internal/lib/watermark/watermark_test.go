package watermark_test

import (
	"testing"

	"photostudio/internal/lib/watermark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		clientName string
		want       string
	}{
		{
			name:       "cloudinary delivery url",
			url:        "https://res.cloudinary.com/studio/image/upload/v1700000000/client-galleries/a.jpg",
			clientName: "Ana",
			want: "https://res.cloudinary.com/studio/image/upload/" +
				"l_text:Arial_120_bold:SAMPLE,co_white,o_40,a_-45/fl_layer_apply,g_center/" +
				"l_text:Arial_36:Ana,co_white,o_60/fl_layer_apply,g_south_east,x_30,y_30/" +
				"v1700000000/client-galleries/a.jpg",
		},
		{
			name:       "client name escaped in layer",
			url:        "https://res.cloudinary.com/studio/image/upload/a.jpg",
			clientName: "Ana Smith, Jr",
			want: "https://res.cloudinary.com/studio/image/upload/" +
				"l_text:Arial_120_bold:SAMPLE,co_white,o_40,a_-45/fl_layer_apply,g_center/" +
				"l_text:Arial_36:Ana%20Smith%2C%20Jr,co_white,o_60/fl_layer_apply,g_south_east,x_30,y_30/" +
				"a.jpg",
		},
		{
			name:       "slash in client name stays inside the layer",
			url:        "https://res.cloudinary.com/studio/image/upload/a.jpg",
			clientName: "Ana/Bo",
			want: "https://res.cloudinary.com/studio/image/upload/" +
				"l_text:Arial_120_bold:SAMPLE,co_white,o_40,a_-45/fl_layer_apply,g_center/" +
				"l_text:Arial_36:Ana%2FBo,co_white,o_60/fl_layer_apply,g_south_east,x_30,y_30/" +
				"a.jpg",
		},
		{
			name:       "plain relative url",
			url:        "a.jpg",
			clientName: "Ana",
			want:       "a.jpg?wm=SAMPLE&wm_angle=-45&wm_client=Ana",
		},
		{
			name:       "existing query kept",
			url:        "https://cdn.example.com/b.jpg?w=800",
			clientName: "Ana",
			want:       "https://cdn.example.com/b.jpg?w=800&wm=SAMPLE&wm_angle=-45&wm_client=Ana",
		},
		{
			name: "no client name",
			url:  "https://cdn.example.com/b.jpg",
			want: "https://cdn.example.com/b.jpg?wm=SAMPLE&wm_angle=-45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, watermark.Apply(tt.url, tt.clientName))
		})
	}
}

func TestApply_Deterministic(t *testing.T) {
	url := "https://res.cloudinary.com/studio/image/upload/a.jpg"

	assert.Equal(t, watermark.Apply(url, "Ana"), watermark.Apply(url, "Ana"))
	assert.NotEqual(t, watermark.Apply(url, "Ana"), watermark.Apply(url, "Bea"))
}

func TestProofs(t *testing.T) {
	proofs := watermark.Proofs([]string{"a.jpg", "b.jpg"}, "Ana")
	require.Len(t, proofs, 2)

	assert.Equal(t, "a.jpg", proofs[0].ID)
	assert.Equal(t, "b.jpg", proofs[1].ID)
	assert.Contains(t, proofs[0].URL, "wm=SAMPLE")
	assert.Contains(t, proofs[1].URL, "wm_client=Ana")
}
