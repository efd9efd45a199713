package asset

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Variant selects the sprite set and the default tuning
type Variant string

const (
	VariantBiker     Variant = "biker"
	VariantSpaceship Variant = "spaceship"
)

// ParseVariant resolves a variant name, case-insensitive
func ParseVariant(name string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(name))) {
	case VariantBiker:
		return VariantBiker, nil
	case VariantSpaceship, "":
		return VariantSpaceship, nil
	default:
		return "", fmt.Errorf("unknown variant %q", name)
	}
}

// Repository holds every sprite a variant needs
// Width and Height of each sprite size the pools at population time
type Repository struct {
	Variant         Variant
	Player          *Sprite
	Projectile      *Sprite
	Enemy           *Sprite
	EnemyProjectile *Sprite
}

// Load returns the sprite set for a variant
func Load(v Variant) (*Repository, error) {
	switch v {
	case VariantBiker:
		return &Repository{
			Variant: v,
			Player: NewSprite("biker", tcell.StyleDefault.Foreground(tcell.ColorAqua),
				" ,o, ",
				"<-|->",
				"(o|o)",
			),
			Projectile: NewSprite("bike-lock", tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
				"U",
			),
			Enemy: NewSprite("car", tcell.StyleDefault.Foreground(tcell.ColorRed),
				".-^-.",
				"'o-o'",
			),
			EnemyProjectile: NewSprite("milkshake", tcell.StyleDefault.Foreground(tcell.ColorPink),
				"Y",
			),
		}, nil

	case VariantSpaceship:
		return &Repository{
			Variant: v,
			Player: NewSprite("ship", tcell.StyleDefault.Foreground(tcell.ColorLime),
				"  A  ",
				" /#\\ ",
				"<=#=>",
			),
			Projectile: NewSprite("bullet", tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
				"|",
			),
			Enemy: NewSprite("enemy", tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
				"/-o-\\",
				" \\_/ ",
			),
			EnemyProjectile: NewSprite("enemy-bullet", tcell.StyleDefault.Foreground(tcell.ColorOrange),
				"*",
			),
		}, nil
	}

	return nil, fmt.Errorf("load assets: unknown variant %q", v)
}

// Background builds an opaque field-sized backdrop for the variant
// Biker gets a road with lane markings, spaceship a sparse starfield
func Background(v Variant, width, height int) *Sprite {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	rows := make([]string, height)
	var b strings.Builder

	switch v {
	case VariantBiker:
		lanes := width / 4
		for y := 0; y < height; y++ {
			b.Reset()
			for x := 0; x < width; x++ {
				switch {
				case x == 0 || x == width-1:
					b.WriteRune('|')
				case lanes > 0 && x%lanes == 0 && y%2 == 0:
					b.WriteRune(':')
				case (x+y*3)%9 == 0:
					b.WriteRune('-')
				default:
					b.WriteRune(' ')
				}
			}
			rows[y] = b.String()
		}
		s := NewSprite("road", tcell.StyleDefault.Foreground(tcell.ColorGray), rows...)
		s.Opaque = true
		return s

	default:
		for y := 0; y < height; y++ {
			b.Reset()
			for x := 0; x < width; x++ {
				// Deterministic scatter, roughly one star per 37 cells
				h := uint32(x)*73856093 ^ uint32(y)*19349663
				switch h % 37 {
				case 0:
					b.WriteRune('.')
				case 1:
					if h%3 == 0 {
						b.WriteRune('+')
					} else {
						b.WriteRune(' ')
					}
				default:
					b.WriteRune(' ')
				}
			}
			rows[y] = b.String()
		}
		s := NewSprite("stars", tcell.StyleDefault.Foreground(tcell.ColorSilver), rows...)
		s.Opaque = true
		return s
	}
}
