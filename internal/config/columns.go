package config

// Columns maps logical record fields to the header names of the source
// sheet. The defaults match the operational spreadsheet's Portuguese
// headers, quirks included ("Prof. Média  (m)" really has two spaces).
type Columns struct {
	Code       string `yaml:"code"`
	Name       string `yaml:"name"`
	Occurrence string `yaml:"occurrence"`

	PondTotalPlanned string `yaml:"pond_total_planned"`
	PondTotalActual  string `yaml:"pond_total_actual"`
	PondFullPlanned  string `yaml:"pond_full_planned"`
	PondFullActual   string `yaml:"pond_full_actual"`
	AreaPlanned      string `yaml:"area_planned"`
	AreaActual       string `yaml:"area_actual"`
	DepthPlanned     string `yaml:"depth_planned"`
	DepthActual      string `yaml:"depth_actual"`

	Latitude   string `yaml:"latitude"`
	Longitude  string `yaml:"longitude"`
	PhotoLink  string `yaml:"photo_link"`
	FilterDate string `yaml:"filter_date"`
}

// DefaultColumns returns the production sheet's header names.
func DefaultColumns() Columns {
	return Columns{
		Code:       "CÓDIGO",
		Name:       "Nome",
		Occurrence: "Ocorrências",

		PondTotalPlanned: "Nº Viveiros total",
		PondTotalActual:  "Atual Viveiros Total",
		PondFullPlanned:  "Nº Viveiros cheio",
		PondFullActual:   "Atual Viveiros cheio",
		AreaPlanned:      "Área (ha).1",
		AreaActual:       "Atual Área (ha).1",
		DepthPlanned:     "Prof. Média  (m)",
		DepthActual:      "Atual Profun.",

		Latitude:   "Lati",
		Longitude:  "Long",
		PhotoLink:  "Link Foto",
		FilterDate: "Data Filtro",
	}
}
