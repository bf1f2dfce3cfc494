package common

// RenderMode is the policy decision for whether media should be shown
// to the user or suppressed.
type RenderMode string

const RenderModeNormal RenderMode = "normal"
const RenderModeBlocked RenderMode = "blocked"

var AllRenderModes = []RenderMode{RenderModeNormal, RenderModeBlocked}
