package reserved

// File is the on-disk shape of the reserved codes list:
//
//	reserved:
//	  - admin
//	  - login
type File struct {
	Reserved []string `yaml:"reserved"`
}

// Defaults are the codes that would shadow shorty's own routes.
var Defaults = []string{
	"api",
	"healthz",
	"readyz",
	"infra",
	"reload",
	"metrics",
	"links",
	"static",
	"login",
	"logout",
	"favicon.ico",
	"robots.txt",
}
