package imageindex

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp" // registers "webp" with image.DecodeConfig

	"github.com/texrig/texrig/pkg/errors"
	"github.com/texrig/texrig/pkg/model"
)

// DecodeAsset builds a model.ImageAsset from a raw image blob (PNG, JPEG
// or WEBP), measuring its physical dimensions without decoding the full
// pixel grid — ingestion only needs the header.
func DecodeAsset(key, sourcePath string, kind model.AssetKind, data []byte) (model.ImageAsset, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.ImageAsset{}, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode image %q", sourcePath)
	}
	return model.ImageAsset{
		Key:            model.NormalizeKey(key),
		SourcePath:     sourcePath,
		Kind:           kind,
		Data:           data,
		PhysicalWidth:  cfg.Width,
		PhysicalHeight: cfg.Height,
	}, nil
}
