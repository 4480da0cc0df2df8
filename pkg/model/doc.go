// Package model defines the serialization types shared across texrig's
// core packages: skeleton documents, image assets, atlas metadata, and the
// analysis report produced by merging them.
//
// Types here are plain structs with dual json/bson tags so the same type
// can be an API response, a cache payload, and a Mongo document without
// a separate DTO layer.
package model
