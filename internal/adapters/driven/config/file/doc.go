// Package file stores application settings in a config.toml file. Dotted
// keys map to TOML tables, so viewer.dpi is written as dpi under [viewer].
package file
