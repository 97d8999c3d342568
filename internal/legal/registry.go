package legal

import (
	"fmt"

	"claimbot/internal/claim"
	"claimbot/pkg/platform/sentinel"
)

// Entity is the registered legal identity of a marketplace operator.
// Immutable after load.
type Entity struct {
	Name               string
	TaxID              string
	RegistrationNumber string
	Address            string
}

// Addressee renders the entity the way it appears in the claim's "Кому"
// block.
func (e Entity) Addressee() string {
	return fmt.Sprintf("%s, ИНН %s, ОГРН %s. Адрес: %s.",
		e.Name, e.TaxID, e.RegistrationNumber, e.Address)
}

// Registry is the read-only marketplace → legal entity lookup. Lookups are
// not total: callers must handle sentinel.ErrNotFound.
type Registry struct {
	entities map[claim.Marketplace]Entity
}

// NewRegistry loads the built-in reference data.
func NewRegistry() *Registry {
	return &Registry{entities: map[claim.Marketplace]Entity{
		claim.MarketplaceWB: {
			Name:               "ООО «Вайлдберриз»",
			TaxID:              "7733545428",
			RegistrationNumber: "1067746062411",
			Address:            "142181, МО, г. Подольск, д. Коледино, 6",
		},
		claim.MarketplaceOzon: {
			Name:               "ООО «Интернет Решения»",
			TaxID:              "7704217370",
			RegistrationNumber: "1027739244741",
			Address:            "123112, г. Москва, Пресненская наб., 10",
		},
		claim.MarketplaceYandex: {
			Name:               "ООО «ЯНДЕКС»",
			TaxID:              "7736207543",
			RegistrationNumber: "1027700229193",
			Address:            "119021, г. Москва, ул. Льва Толстого, 16",
		},
	}}
}

// Lookup fetches the legal entity for a marketplace.
func (r *Registry) Lookup(m claim.Marketplace) (Entity, error) {
	if e, ok := r.entities[m]; ok {
		return e, nil
	}
	return Entity{}, fmt.Errorf("marketplace %q: %w", m, sentinel.ErrNotFound)
}

// Marketplaces lists the known keys in menu order.
func (r *Registry) Marketplaces() []claim.Marketplace {
	return []claim.Marketplace{claim.MarketplaceWB, claim.MarketplaceOzon, claim.MarketplaceYandex}
}

// Reference is the statutory background shown by the «Правовой справочник»
// menu item.
const Reference = "⚖️ Правовая база\n\n" +
	"• ст. 18 ЗоЗПП — права при обнаружении недостатков товара\n" +
	"• ст. 22 ЗоЗПП — сроки удовлетворения требований\n" +
	"• ст. 309 ГК РФ — обязательства должны исполняться надлежащим образом\n\n" +
	"Претензия обязательна перед судом."
