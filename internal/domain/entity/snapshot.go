package entity

// Snapshot es el documento completo que se persiste y se respalda: las
// cuatro colecciones, cada una en orden de inserción.
type Snapshot struct {
	Customers       []Customer       `json:"customers"`
	Products        []Product        `json:"products"`
	InboundRecords  []InboundRecord  `json:"inboundRecords"`
	OutboundRecords []OutboundRecord `json:"outboundRecords"`
}

// NewSnapshot devuelve un documento vacío con las cuatro colecciones
// inicializadas (ninguna nil).
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Customers:       []Customer{},
		Products:        []Product{},
		InboundRecords:  []InboundRecord{},
		OutboundRecords: []OutboundRecord{},
	}
}

// Complete indica si el documento trae las cuatro claves. Tras un
// json.Unmarshal, una clave ausente (o null) queda como slice nil, mientras
// que una lista vacía presente queda como slice no nil; eso permite
// distinguir un respaldo recortado de uno legítimamente vacío.
func (s *Snapshot) Complete() bool {
	return s.Customers != nil && s.Products != nil &&
		s.InboundRecords != nil && s.OutboundRecords != nil
}

// Normalize reemplaza las colecciones nil por listas vacías. Se usa en la
// carga normal, donde una clave ausente no es un error.
func (s *Snapshot) Normalize() {
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.InboundRecords == nil {
		s.InboundRecords = []InboundRecord{}
	}
	if s.OutboundRecords == nil {
		s.OutboundRecords = []OutboundRecord{}
	}
}

// Clone devuelve una copia profunda del documento, para que los exports y
// respaldos no compartan memoria con el estado vivo.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Customers:       make([]Customer, len(s.Customers)),
		Products:        make([]Product, len(s.Products)),
		InboundRecords:  make([]InboundRecord, len(s.InboundRecords)),
		OutboundRecords: make([]OutboundRecord, len(s.OutboundRecords)),
	}
	copy(c.Customers, s.Customers)
	copy(c.Products, s.Products)
	copy(c.InboundRecords, s.InboundRecords)
	copy(c.OutboundRecords, s.OutboundRecords)
	return c
}
