package config

import "github.com/spf13/afero"

// fs is swapped for an afero.NewMemMapFs() in the tests.
var fs = afero.NewOsFs()
