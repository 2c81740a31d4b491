package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/require"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/infrastructure/render"
)

func TestImageResolver_AnnotatedTier(t *testing.T) {
	api := newFakeAPI()
	api.images["result_a.jpg"] = pngBytes(20, 10)
	api.images["a.jpg"] = pngBytes(20, 10)
	r := NewImageResolver(api, &stubRenderer{}, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{ImageName: "a.jpg", ResultImageName: "result_a.jpg"})

	require.Equal(t, entity.TierAnnotated, img.Tier)
	require.Equal(t, "result_a.jpg", img.Source)
	require.Equal(t, []string{"result_a.jpg"}, api.imageCalls)
}

func TestImageResolver_CacheBustPerRequest(t *testing.T) {
	api := newFakeAPI()
	api.images["result_a.jpg"] = pngBytes(4, 4)
	r := NewImageResolver(api, nil, nil)
	n := 0
	r.cacheBust = func() string {
		n++
		return string(rune('0' + n))
	}
	rec := entity.DefectRecord{ImageName: "a.jpg", ResultImageName: "result_a.jpg"}

	r.Resolve(context.Background(), rec)
	r.Resolve(context.Background(), rec)

	require.Equal(t, []string{"1", "2"}, api.cacheBusts)
}

func TestImageResolver_RawFallbackWithoutAnnotations(t *testing.T) {
	api := newFakeAPI()
	raw := pngBytes(20, 10)
	api.images["a.jpg"] = raw
	renderer := &stubRenderer{out: []byte("drawn")}
	r := NewImageResolver(api, renderer, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{ImageName: "a.jpg", ResultImageName: "result_a.jpg"})

	require.Equal(t, entity.TierRawFallback, img.Tier)
	require.False(t, img.Drawn)
	require.Equal(t, raw, img.Data)
	require.Zero(t, renderer.calls)
	require.Equal(t, []string{"result_a.jpg", "a.jpg"}, api.imageCalls)
}

func TestImageResolver_RawFallbackDrawsAnnotations(t *testing.T) {
	api := newFakeAPI()
	api.images["a.jpg"] = pngBytes(20, 10)
	renderer := &stubRenderer{out: []byte("drawn")}
	r := NewImageResolver(api, renderer, nil)
	anns := []entity.Annotation{{X1: 1, Y1: 1, X2: 5, Y2: 5, Label: "crack"}}

	img := r.Resolve(context.Background(), entity.DefectRecord{ImageName: "a.jpg", ResultImageName: "result_a.jpg", Annotations: anns})

	require.Equal(t, entity.TierRawFallback, img.Tier)
	require.True(t, img.Drawn)
	require.Equal(t, []byte("drawn"), img.Data)
	require.Equal(t, anns, renderer.got)
}

func TestImageResolver_SkipsEmptyResultName(t *testing.T) {
	api := newFakeAPI()
	api.images["a.jpg"] = pngBytes(4, 4)
	r := NewImageResolver(api, nil, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{ImageName: "a.jpg"})

	require.Equal(t, entity.TierRawFallback, img.Tier)
	require.Equal(t, []string{"a.jpg"}, api.imageCalls)
}

func TestImageResolver_UndecodableAnnotatedFallsBack(t *testing.T) {
	api := newFakeAPI()
	api.images["result_a.jpg"] = []byte("<html>not an image</html>")
	api.images["a.jpg"] = pngBytes(4, 4)
	r := NewImageResolver(api, nil, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{ImageName: "a.jpg", ResultImageName: "result_a.jpg"})

	require.Equal(t, entity.TierRawFallback, img.Tier)
}

func TestImageResolver_TruncatedAnnotatedFallsBack(t *testing.T) {
	api := newFakeAPI()
	full := pngBytes(40, 30)
	api.images["result_a.jpg"] = full[:len(full)/2]
	api.images["a.jpg"] = pngBytes(40, 30)
	r := NewImageResolver(api, nil, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{ImageName: "a.jpg", ResultImageName: "result_a.jpg"})

	require.Equal(t, entity.TierRawFallback, img.Tier)
	require.Equal(t, "a.jpg", img.Source)
}

func TestImageResolver_AcceptsRendererFormats(t *testing.T) {
	var buf bytes.Buffer
	src := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{color.Black, color.White})
	require.NoError(t, gif.Encode(&buf, src, nil))

	api := newFakeAPI()
	api.images["result_a.gif"] = buf.Bytes()
	r := NewImageResolver(api, nil, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{ImageName: "a.gif", ResultImageName: "result_a.gif"})

	require.Equal(t, entity.TierAnnotated, img.Tier)
	require.Equal(t, buf.Bytes(), img.Data)
}

func TestImageResolver_RenderErrorKeepsRaw(t *testing.T) {
	api := newFakeAPI()
	raw := pngBytes(4, 4)
	api.images["a.jpg"] = raw
	r := NewImageResolver(api, &stubRenderer{err: errors.New("no canvas")}, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{
		ImageName:   "a.jpg",
		Annotations: []entity.Annotation{{X2: 2, Y2: 2, Label: "crack"}},
	})

	require.Equal(t, entity.TierRawFallback, img.Tier)
	require.False(t, img.Drawn)
	require.Equal(t, raw, img.Data)
}

type panicRenderer struct{}

func (panicRenderer) Render([]byte, []entity.Annotation) ([]byte, error) { panic("boom") }

func TestImageResolver_RenderPanicContained(t *testing.T) {
	api := newFakeAPI()
	api.images["a.jpg"] = pngBytes(4, 4)
	r := NewImageResolver(api, panicRenderer{}, nil)

	require.NotPanics(t, func() {
		img := r.Resolve(context.Background(), entity.DefectRecord{
			ImageName:   "a.jpg",
			Annotations: []entity.Annotation{{X2: 2, Y2: 2}},
		})
		require.Equal(t, entity.TierRawFallback, img.Tier)
	})
}

func TestImageResolver_FailedTier(t *testing.T) {
	api := newFakeAPI()
	r := NewImageResolver(api, &stubRenderer{}, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{ImageName: "a.jpg", ResultImageName: "result_a.jpg"})

	require.Equal(t, entity.TierFailed, img.Tier)
	require.Empty(t, img.Data)
}

func TestImageResolver_ClientDrawnOverlayRoundTrip(t *testing.T) {
	api := newFakeAPI()
	api.images["a.jpg"] = pngBytes(80, 60)
	canvas := render.NewCanvas()
	canvas.Format = render.FormatPNG
	r := NewImageResolver(api, canvas, nil)

	img := r.Resolve(context.Background(), entity.DefectRecord{
		ImageName:       "a.jpg",
		ResultImageName: "result_a.jpg",
		Annotations:     []entity.Annotation{{X1: 10, Y1: 10, X2: 50, Y2: 40, Label: "crack"}},
	})
	require.Equal(t, entity.TierRawFallback, img.Tier)
	require.True(t, img.Drawn)

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	require.Equal(t, 80, decoded.Bounds().Dx())
	require.Equal(t, 60, decoded.Bounds().Dy())

	green := color.RGBAModel.Convert(color.RGBA{G: 255, A: 255})
	require.Equal(t, green, color.RGBAModel.Convert(decoded.At(30, 10)), "top edge")
	require.Equal(t, green, color.RGBAModel.Convert(decoded.At(10, 25)), "left edge")
	require.NotEqual(t, green, color.RGBAModel.Convert(decoded.At(30, 25)), "interior untouched")
}
