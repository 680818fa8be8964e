package domain

// Catalog entities: small reference tables shared across accounts.

type Currency struct {
	ID     int64
	Code   string
	Name   string
	Symbol string
}

type Status struct {
	ID    int64
	Name  string
	Color string
}

type ClientType struct {
	ID          int64
	Name        string
	Description string
}

type ProjectType struct {
	ID   int64
	Name string
}

type Profession struct {
	ID          int64
	Name        string
	Description string
}

type Skill struct {
	ID   int64
	Name string
}

type Theme struct {
	ID             int64
	Name           string
	PrimaryColor   string
	SecondaryColor string
}
