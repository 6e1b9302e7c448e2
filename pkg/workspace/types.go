// Package workspace implements the client for the workspace tree of notebook
// documents, including the recursive export and import used to mirror a
// workspace folder into a local directory and back.
package workspace

import "path"

// ObjectType discriminates the kinds of objects in the workspace tree.
type ObjectType string

const (
	// Directory is a workspace folder containing other objects.
	Directory ObjectType = "DIRECTORY"

	// Notebook is a leaf object holding notebook source.
	Notebook ObjectType = "NOTEBOOK"

	// Library is a leaf object holding a code library. The sync commands
	// skip libraries since they have no local file representation.
	Library ObjectType = "LIBRARY"
)

// Language is the source language of a notebook.
type Language string

const (
	Scala  Language = "SCALA"
	Python Language = "PYTHON"
	SQL    Language = "SQL"
	R      Language = "R"
)

// ExportFormat is the serialization format for notebook transfer.
type ExportFormat string

const (
	Source  ExportFormat = "SOURCE"
	HTML    ExportFormat = "HTML"
	Jupyter ExportFormat = "JUPYTER"
	DBC     ExportFormat = "DBC"
)

// ObjectInfo describes one object in the workspace tree, as returned by the
// get-status and list endpoints.
type ObjectInfo struct {
	Path       string     `json:"path"`
	ObjectType ObjectType `json:"object_type"`
	Language   Language   `json:"language,omitempty"`
}

// Basename returns the last element of the object's workspace path.
func (info ObjectInfo) Basename() string {
	return path.Base(info.Path)
}

// IsDir returns whether the object is a workspace folder.
func (info ObjectInfo) IsDir() bool {
	return info.ObjectType == Directory
}

// IsNotebook returns whether the object is a notebook.
func (info ObjectInfo) IsNotebook() bool {
	return info.ObjectType == Notebook
}
