// Package config holds the declarative per-source configuration: input file
// names, root-concept injection data, namespace filters and format quirks.
// The built-in registry mirrors the upstream source contracts and can be
// overridden through a config file or environment variables.
package config

import "path/filepath"

// Format tags accepted on the invocation surface.
const (
	FormatOBO = "obo"
	FormatTSV = "tsv"
	FormatCSV = "csv"
	FormatTXT = "txt"
)

// Source tags with variant-selecting behavior.
const (
	SourceNCBITaxon = "ncbi_taxon"
	SourceNCBIGene  = "ncbi_gene"
)

// Config represents the complete kbgraph configuration.
type Config struct {
	DataDir   string            `yaml:"data_dir" mapstructure:"data_dir"`     // input files and persisted id-mapping dictionaries
	OutputDir string            `yaml:"output_dir" mapstructure:"output_dir"` // edge-list output files
	Workers   int               `yaml:"workers" mapstructure:"workers"`       // worker pool size for the statistics stage (0 = NumCPU)
	Sources   map[string]Source `yaml:"sources" mapstructure:"sources"`
}

// Source describes one knowledge-base source. Zero fields mean the quirk
// does not apply to that source.
type Source struct {
	File string `yaml:"file" mapstructure:"file"` // input file name, relative to DataDir

	// Files overrides File for sources distributed in more than one
	// format (e.g. medic ships both as OBO and as a CTD TSV export).
	Files map[string]string `yaml:"files" mapstructure:"files"`

	RootID      string `yaml:"root_id" mapstructure:"root_id"`           // engineered root identifier
	RootName    string `yaml:"root_name" mapstructure:"root_name"`       // engineered root canonical name
	Namespace   string `yaml:"namespace" mapstructure:"namespace"`       // OBO namespace filter
	XrefPrefix  string `yaml:"xref_prefix" mapstructure:"xref_prefix"`   // OBO xref prefix feeding the alias map
	DerivedFrom bool   `yaml:"derived_from" mapstructure:"derived_from"` // scan OBO relationship entries for derived_from edges

	// Bridges lists top-level branch identifiers connected to the root by
	// hand-specified edges (chebi only).
	Bridges []string `yaml:"bridges" mapstructure:"bridges"`

	// Tabular/registry contracts.
	HeaderRows  int    `yaml:"header_rows" mapstructure:"header_rows"`   // rows skipped before data
	URIMarker   string `yaml:"uri_marker" mapstructure:"uri_marker"`     // substring filter on the identifier column
	LocalPrefix string `yaml:"local_prefix" mapstructure:"local_prefix"` // prefix added to derived local identifiers
	Rank        string `yaml:"rank" mapstructure:"rank"`                 // target rank filter (taxonomy)

	// Plain-text sources read two independent files instead of File.
	TermsFile string `yaml:"terms_file" mapstructure:"terms_file"`
	EdgesFile string `yaml:"edges_file" mapstructure:"edges_file"`
}

// Source returns the configuration for a source tag, zero-valued when the
// source has no registered quirks.
func (c *Config) Source(name string) Source {
	return c.Sources[name]
}

// SourcePath returns the input file path for a source in the given format,
// resolved against the data directory. An absolute file name is used as-is.
func (c *Config) SourcePath(name, format string) string {
	src := c.Sources[name]
	file := src.File
	if override, ok := src.Files[format]; ok {
		file = override
	}
	if file == "" {
		file = name
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.DataDir, file)
}

// KBDir returns the per-source directory holding the persisted id-mapping
// dictionaries.
func (c *Config) KBDir(name string) string {
	return filepath.Join(c.DataDir, name)
}

// Default returns the built-in source registry.
func Default() *Config {
	return &Config{
		DataDir:   "data/kbs",
		OutputDir: "node2vec/graph",
		Sources: map[string]Source{
			"go_bp": {
				File:      "go-basic.obo",
				RootID:    "GO:0008150",
				RootName:  "biological_process",
				Namespace: "biological_process",
			},
			"go_cc": {
				File:      "go-basic.obo",
				RootID:    "GO:0005575",
				RootName:  "cellular_component",
				Namespace: "cellular_component",
			},
			"chebi": {
				File:     "chebi.obo",
				RootID:   "CHEBI:00",
				RootName: "root",
				Bridges: []string{
					"CHEBI_24431", // chemical entity
					"CHEBI_50906", // role
					"CHEBI_36342", // subatomic particle
					"CHEBI_33232", // application
				},
			},
			"hp": {
				File:       "hp.obo",
				RootID:     "HP:0000001",
				RootName:   "All",
				XrefPrefix: "UMLS:",
			},
			"medic": {
				File:       "CTD_diseases.obo",
				Files:      map[string]string{FormatTSV: "medic/CTD_diseases.tsv"},
				RootID:     "MESH:C",
				RootName:   "Diseases",
				HeaderRows: 29,
			},
			"do": {
				File:     "doid.obo",
				RootID:   "DOID:4",
				RootName: "disease",
			},
			"cellosaurus": {
				File:        "cellosaurus.obo",
				DerivedFrom: true,
			},
			"cl": {
				File: "cl-basic.obo",
			},
			"uberon": {
				File: "uberon-basic.obo",
			},
			"ctd_chem": {
				File:       "ctd_chem/CTD_chemicals.tsv",
				RootID:     "MESH:D",
				RootName:   "Chemicals",
				HeaderRows: 29,
			},
			"ctd_anat": {
				File:       "ctd_anat/CTD_anatomy.tsv",
				RootID:     "MESH:A",
				RootName:   "Anatomy",
				HeaderRows: 29,
			},
			"ctd_gene": {
				File:       "ctd_gene/CTD_genes.tsv",
				HeaderRows: 29,
			},
			SourceNCBITaxon: {
				File:        "NCBITAXON.csv",
				URIMarker:   "NCBITAXON/",
				LocalPrefix: "NCBITaxon_",
				Rank:        "species",
				HeaderRows:  1,
			},
			SourceNCBIGene: {
				File:        "ncbi_gene/All_Data.gene_info",
				LocalPrefix: "NCBIGene_",
				HeaderRows:  7,
			},
		},
	}
}
