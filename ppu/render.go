package ppu

import "goboy/mask"

// renderScanline fills Frame[ly] with background, window and sprite pixels.
// This corrects two bugs present in original_source's RenderScanLine: the
// signed tile-index correction there adds/subtracts 128 from an index that
// is then used (unsigned) to index the *unsigned* tile data table, and the
// final tile-byte fetch reuses tileDataIndex instead of the computed
// per-row data address. Both are fixed here; see DESIGN.md.
func (p *PPU) renderScanline() {
	if p.lcdc&lcdcDisplayOn == 0 {
		for x := 0; x < ScreenWidth; x++ {
			p.Frame[p.ly][x] = 0
		}
		return
	}

	var bgLine, winLine [ScreenWidth]byte
	var bgDrawn, winDrawn [ScreenWidth]bool

	bgEnabled := p.lcdc&lcdcBGEnable != 0
	if bgEnabled {
		p.renderBackgroundLine(&bgLine, &bgDrawn)
	}
	if p.lcdc&lcdcWindowEnable != 0 && p.ly >= p.wy {
		p.renderWindowLine(&winLine, &winDrawn)
	}

	for x := 0; x < ScreenWidth; x++ {
		if !bgEnabled && !winDrawn[x] {
			// LCDC bit 0 clear forces shade 0 regardless of BGP -- it must
			// not be routed through shade(), whose low bits can be nonzero.
			p.bgColorIndex[x] = 0
			p.Frame[p.ly][x] = 0
			continue
		}

		colorIndex := byte(0)
		switch {
		case winDrawn[x]:
			colorIndex = winLine[x]
		case bgDrawn[x]:
			colorIndex = bgLine[x]
		}
		p.bgColorIndex[x] = colorIndex
		p.Frame[p.ly][x] = shade(p.bgp, colorIndex)
	}

	if p.lcdc&lcdcObjEnable != 0 {
		p.renderSprites()
	}
}

// bgTileAddr resolves the address of tile tileIndex's data, honoring
// LCDC bit 4's unsigned (0x8000-based) vs signed (0x9000-based) addressing.
func (p *PPU) bgTileAddr(tileIndex byte) uint16 {
	if p.lcdc&lcdcTileData != 0 {
		return 0x8000 + uint16(tileIndex)*16
	}
	return uint16(0x9000 + int32(int8(tileIndex))*16)
}

func (p *PPU) tileMapBase(windowMapBit bool) uint16 {
	bit := lcdcBGMap
	if windowMapBit {
		bit = lcdcWindowMap
	}
	if p.lcdc&byte(bit) != 0 {
		return 0x9C00
	}
	return 0x9800
}

// colorIndexAt returns the 2-bit color index for pixel col of the tile row
// starting at tileAddr. Each tile row is two bitplanes; pixel col's bit
// lives at mask position col+1 (col 0 is the MSB of each plane byte).
func (p *PPU) colorIndexAt(tileAddr uint16, row, col byte) byte {
	lo := p.vram[(tileAddr+uint16(row)*2)&0x1FFF]
	hi := p.vram[(tileAddr+uint16(row)*2+1)&0x1FFF]
	var loBit, hiBit byte
	if bitAtCol(lo, col) {
		loBit = 1
	}
	if bitAtCol(hi, col) {
		hiBit = 1
	}
	return hiBit<<1 | loBit
}

// bitAtCol reports the bitplane bit for tile column col (0-7, left to
// right), translating it to mask's 1-indexed, MSB-based position.
func bitAtCol(v byte, col byte) bool {
	switch col {
	case 0:
		return mask.IsSet(v, mask.I1)
	case 1:
		return mask.IsSet(v, mask.I2)
	case 2:
		return mask.IsSet(v, mask.I3)
	case 3:
		return mask.IsSet(v, mask.I4)
	case 4:
		return mask.IsSet(v, mask.I5)
	case 5:
		return mask.IsSet(v, mask.I6)
	case 6:
		return mask.IsSet(v, mask.I7)
	default:
		return mask.IsSet(v, mask.I8)
	}
}

// shade extracts colorIndex's 2-bit field from palette: index 0 is the
// palette's low bits, index 3 its high bits.
func shade(palette, colorIndex byte) byte {
	switch colorIndex {
	case 0:
		return mask.Range(palette, mask.I7, mask.I8)
	case 1:
		return mask.Range(palette, mask.I5, mask.I6)
	case 2:
		return mask.Range(palette, mask.I3, mask.I4)
	default:
		return mask.Range(palette, mask.I1, mask.I2)
	}
}

func (p *PPU) renderBackgroundLine(line *[ScreenWidth]byte, drawn *[ScreenWidth]bool) {
	mapBase := p.tileMapBase(false)
	mapY := byte(int(p.ly) + int(p.scy))
	tileRow := mapY / 8
	rowInTile := mapY % 8

	for x := 0; x < ScreenWidth; x++ {
		mapX := byte(x + int(p.scx))
		tileCol := mapX / 8
		colInTile := mapX % 8

		tileIndex := p.vram[(mapBase+uint16(tileRow)*32+uint16(tileCol))&0x1FFF]
		tileAddr := p.bgTileAddr(tileIndex)

		line[x] = p.colorIndexAt(tileAddr, rowInTile, colInTile)
		drawn[x] = true
	}
}

func (p *PPU) renderWindowLine(line *[ScreenWidth]byte, drawn *[ScreenWidth]bool) {
	mapBase := p.tileMapBase(true)
	winY := p.ly - p.wy
	tileRow := winY / 8
	rowInTile := winY % 8

	for x := 0; x < ScreenWidth; x++ {
		wx := int(p.wx) - 7
		if x < wx {
			continue
		}
		winX := byte(x - wx)
		tileCol := winX / 8
		colInTile := winX % 8

		tileIndex := p.vram[(mapBase+uint16(tileRow)*32+uint16(tileCol))&0x1FFF]
		tileAddr := p.bgTileAddr(tileIndex)

		line[x] = p.colorIndexAt(tileAddr, rowInTile, colInTile)
		drawn[x] = true
	}
}

const maxSpritesPerLine = 10

func (p *PPU) renderSprites() {
	height := 8
	if p.lcdc&lcdcObjSize != 0 {
		height = 16
	}

	drawnOnLine := 0
	for i := 0; i < oamSize && drawnOnLine < maxSpritesPerLine; i += 4 {
		spriteY := int(p.oam[i]) - 16
		spriteX := int(p.oam[i+1]) - 8
		tile := p.oam[i+2]
		flags := p.oam[i+3]

		row := int(p.ly) - spriteY
		if row < 0 || row >= height {
			continue
		}
		drawnOnLine++

		if height == 16 {
			tile &^= 1
		}
		if flags&oamFlipY != 0 {
			row = height - 1 - row
		}

		tileAddr := 0x8000 + uint16(tile)*16
		palette := p.obp0
		if flags&oamPalette != 0 {
			palette = p.obp1
		}

		for col := 0; col < 8; col++ {
			screenX := spriteX + col
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			srcCol := col
			if flags&oamFlipX != 0 {
				srcCol = 7 - col
			}
			colorIndex := p.colorIndexAt(tileAddr, byte(row), byte(srcCol))
			if colorIndex == 0 {
				continue // transparent
			}
			if flags&oamPriority != 0 && p.bgColorIndex[screenX] != 0 {
				continue // behind background
			}
			p.Frame[p.ly][screenX] = shade(palette, colorIndex)
		}
	}
}
