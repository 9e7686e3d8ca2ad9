// Package generation defines the boundary to the external content
// generation engine. The engine itself runs outside this process; the
// application only hands out the prompt template and stores whatever
// articles the engine produces, without coupling to a specific provider.
package generation
