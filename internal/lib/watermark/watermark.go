// Package watermark builds proofing URLs for gallery images. Nothing is
// rendered here: the image host applies the overlay at delivery time.
package watermark

import (
	"net/url"
	"strings"

	"photostudio/internal/domain/models"
)

const (
	SampleText = "SAMPLE"
	Angle      = "-45"

	cloudinaryHost = "res.cloudinary.com"
	uploadSegment  = "/upload/"
)

// Apply returns the watermarked variant of rawURL for the given client.
// The result depends only on its arguments.
func Apply(rawURL, clientName string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if strings.HasSuffix(u.Host, cloudinaryHost) {
		if idx := strings.Index(rawURL, uploadSegment); idx >= 0 {
			cut := idx + len(uploadSegment)
			return rawURL[:cut] + transformation(clientName) + rawURL[cut:]
		}
	}

	q := u.Query()
	q.Set("wm", SampleText)
	q.Set("wm_angle", Angle)
	if clientName != "" {
		q.Set("wm_client", clientName)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// Proofs pairs each original with its watermarked URL, preserving order.
func Proofs(images []string, clientName string) []models.ProofImage {
	out := make([]models.ProofImage, 0, len(images))
	for _, img := range images {
		out = append(out, models.ProofImage{ID: img, URL: Apply(img, clientName)})
	}

	return out
}

func transformation(clientName string) string {
	var b strings.Builder

	b.WriteString("l_text:Arial_120_bold:" + SampleText + ",co_white,o_40,a_" + Angle + "/fl_layer_apply,g_center/")
	if clientName != "" {
		b.WriteString("l_text:Arial_36:" + layerText(clientName) + ",co_white,o_60/fl_layer_apply,g_south_east,x_30,y_30/")
	}

	return b.String()
}

// layerText escapes characters that would end a text layer early. Commas and
// slashes come out as %2C and %2F.
func layerText(s string) string {
	return url.PathEscape(s)
}
