package app

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"inspection-viewer/internal/domain/entity"
	"inspection-viewer/internal/domain/port"
)

// ImageResolver выбирает, что показать для записи: готовый размеченный
// снимок, исходный снимок с рамками, нарисованными на клиенте, или заглушку.
type ImageResolver struct {
	api       port.InspectionAPI
	renderer  port.AnnotationRenderer
	cacheBust func() string
	log       logrus.FieldLogger
}

// NewImageResolver создаёт резолвер. renderer может быть nil: тогда
// исходный снимок показывается без рамок.
func NewImageResolver(api port.InspectionAPI, renderer port.AnnotationRenderer, log logrus.FieldLogger) *ImageResolver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ImageResolver{
		api:       api,
		renderer:  renderer,
		cacheBust: timestampBust,
		log:       log,
	}
}

func timestampBust() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

// Resolve никогда не возвращает ошибку: каждая ступень ловит свою.
func (r *ImageResolver) Resolve(ctx context.Context, rec entity.DefectRecord) entity.DisplayImage {
	log := r.log.WithField("image", rec.ImageName)

	if rec.ResultImageName != "" {
		data, err := r.load(ctx, rec.ResultImageName)
		if err == nil {
			return entity.DisplayImage{Tier: entity.TierAnnotated, Data: data, Source: rec.ResultImageName}
		}
		log.WithError(err).Debug("annotated image unavailable, falling back to original")
	}

	data, err := r.load(ctx, rec.ImageName)
	if err != nil {
		log.WithError(err).Warn("original image unavailable")
		return entity.DisplayImage{Tier: entity.TierFailed, Source: rec.ImageName}
	}

	img := entity.DisplayImage{Tier: entity.TierRawFallback, Data: data, Source: rec.ImageName}
	if !rec.HasAnnotations() || r.renderer == nil {
		return img
	}

	drawn, err := r.render(data, rec.Annotations)
	if err != nil {
		log.WithError(err).Error("drawing annotations failed, showing original")
		return img
	}
	img.Data = drawn
	img.Drawn = true
	return img
}

func (r *ImageResolver) load(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, entity.ErrImageNotFound
	}

	data, err := r.api.Image(ctx, name, r.cacheBust())
	if err != nil {
		return nil, err
	}

	// Снимок декодируется целиком теми же декодерами, что и у рендерера:
	// обрезанный файл считается незагрузившимся.
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return data, nil
}

func (r *ImageResolver) render(data []byte, annotations []entity.Annotation) (out []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("renderer panic: %v", p)
		}
	}()
	return r.renderer.Render(data, annotations)
}
