// Package vis defines the Config, the Codec interface to a trained
// point-cloud autoencoder, the core value types (Cloud, Latent, Color),
// and standard errors for the pcaeviz visualization pipeline.
// See docs/ARCHITECTURE.md § Main Interface.
package vis
