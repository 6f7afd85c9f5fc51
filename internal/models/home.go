package models

// HomePage aggregates everything the public landing page renders.
// Sections disabled in SiteSettings are left empty.
type HomePage struct {
	Settings         *SiteSettings    `json:"settings"`
	HeroSlides       []*HeroSlide     `json:"hero_slides"`
	Categories       []*Category      `json:"categories"`
	Brands           []*Brand         `json:"brands"`
	FeaturedProducts []*Product       `json:"featured_products"`
	Products         []*Product       `json:"products"`
	PersonalShopper  *PersonalShopper `json:"personal_shopper,omitempty"`
}
