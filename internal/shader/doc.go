// Package shader prepares WGSL sources for the rect renderer.
//
// WGSL has no preprocessor, so variants of one source are selected with a
// small line-based subset of the C preprocessor (#define, #ifdef, #ifndef,
// #else, #endif). The selected text is compiled to SPIR-V with naga.
package shader
