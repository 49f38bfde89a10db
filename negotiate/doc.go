// Package negotiate derives the formats the postprocessing element accepts
// and produces, fixates the source format from the sink format and the
// configured parameters, and holds the format rules that gate
// deinterlacing and HDR tone mapping.
package negotiate
