// Package enhance sequences filter primitives into enhancement pipelines.
//
// Two entry points exist. Enhance runs one of four fixed presets (Standard,
// Natural, Vivid, Pro), each a hard-coded ordered list of steps. EnhanceAccurate
// runs a continuously parameterized pipeline driven by Params, whose fields
// are clamped to their ranges instead of being rejected.
//
// Both are pure: the input buffer is never modified and the result always
// has the input's dimensions. Configuration is passed per call; the package
// holds no mutable state.
package enhance
