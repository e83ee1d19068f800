package domain

// Short directorate codes.
const (
	DirectorateNord   = "DRN"
	DirectorateCentre = "DRC"
	DirectorateDakar1 = "DR1"
	DirectorateDakar2 = "DR2"
	DirectorateSud    = "DRS"
	DirectorateSudEst = "DRSE"
	DirectorateEst    = "DRE"
)

// DirectorateNames maps the long-form regional directorate names found in the
// sales exports to their short codes.
var DirectorateNames = map[string]string{
	"DV-DRVN_DIRECTION REGIONALE DES VENTES NORD":     DirectorateNord,
	"DV-DRVC_DIRECTION REGIONALE DES VENTES CENTRE":   DirectorateCentre,
	"DV-DRV1_DIRECTION REGIONALE DES VENTES DAKAR 1":  DirectorateDakar1,
	"DV-DRV2_DIRECTION REGIONALE DES VENTES DAKAR 2":  DirectorateDakar2,
	"DV-DRVS_DIRECTION REGIONALE DES VENTES SUD":      DirectorateSud,
	"DV-DRVSE_DIRECTION REGIONALE DES VENTES SUD-EST": DirectorateSudEst,
	"DV-DRVE_DIRECTION REGIONALE DES VENTES EST":      DirectorateEst,
}
