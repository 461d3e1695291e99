// Package classifier provides the image classifier collaborator used to label
// pet images. The classifier itself is a black box: it receives an image path
// and a model architecture and returns free-text labels. Backends run an
// external command, call an HTTP inference service, or replay precomputed
// labels from a fixture file.
package classifier
