package component

import "github.com/milk9111/chromagate/common"

// ColorCodeComponent assigns an entity to a signaling channel. Crystals and
// gates that share a value are wired together; no other link exists.
var ColorCodeComponent = NewComponent[common.ColorCode]()
