package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is what the systems read from the keyboard and mouse each frame.
type Input interface {
	JustPressed(key ebiten.Key) bool
	Cursor() (x, y int)
	Clicked() bool
}

type ebitenInput struct{}

func (ebitenInput) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

func (ebitenInput) Cursor() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) Clicked() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
