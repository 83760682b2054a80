package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts parses the embedded Go fonts
func (e *EbitenRenderer) loadFonts() error {
	sans, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load sans font: %w", err)
	}
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("load mono font: %w", err)
	}
	e.sansFontSource = sans
	e.monoFontSource = mono
	return nil
}

// getSansFontFace returns a cached sans-serif face for UI text
func (e *EbitenRenderer) getSansFontFace(size float64) *text.GoTextFace {
	return e.face(faceKey{size: size})
}

// getMonoFontFace returns a cached monospace face for board labels
func (e *EbitenRenderer) getMonoFontFace(size float64) *text.GoTextFace {
	return e.face(faceKey{mono: true, size: size})
}

func (e *EbitenRenderer) face(k faceKey) *text.GoTextFace {
	if f, ok := e.faces[k]; ok {
		return f
	}
	src := e.sansFontSource
	if k.mono {
		src = e.monoFontSource
	}
	f := &text.GoTextFace{Source: src, Size: k.size}
	if e.faces == nil {
		e.faces = make(map[faceKey]*text.GoTextFace)
	}
	e.faces[k] = f
	return f
}
