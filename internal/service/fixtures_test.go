package service_test

import "github.com/guttosm/sale-pack-service/internal/domain/model"

func catalogProducts() []*model.Product {
	return []*model.Product{
		{ID: "cpu", Name: "CPU", ListPrice: 100, TaxIDs: []string{"vat21"}, UomID: "unit"},
		{ID: "ram", Name: "RAM", ListPrice: 50, TaxIDs: []string{"vat21"}, UomID: "unit"},
		{ID: "ssd", Name: "SSD", ListPrice: 80, TaxIDs: []string{"vat21"}, UomID: "unit"},
		{
			ID: "workstation", Name: "Workstation", ListPrice: 500, UomID: "unit",
			PackOK: true, PackType: model.PackTypeDetailed, PackComponentPrice: model.ComponentPriceDetailed,
			PackLines: []model.PackLine{
				{ProductID: "cpu", Quantity: 1},
				{ProductID: "ram", Quantity: 2, SaleDiscount: 15},
				{ProductID: "ssd", Quantity: 1},
			},
		},
		{
			ID: "bundle", Name: "Bundle", UomID: "unit", PackModifiable: true,
			PackOK: true, PackType: model.PackTypeDetailed, PackComponentPrice: model.ComponentPriceNonDetailed,
			PackLines: []model.PackLine{
				{ProductID: "cpu", Quantity: 1, SaleDiscount: 10},
				{ProductID: "ram", Quantity: 1},
			},
		},
		{
			ID: "kit", Name: "Kit", ListPrice: 120, UomID: "unit",
			PackOK: true, PackType: model.PackTypeNonDetailed,
			PackLines: []model.PackLine{{ProductID: "cpu", Quantity: 1}},
		},
		{
			ID: "rack", Name: "Rack", ListPrice: 900, UomID: "unit",
			PackOK: true, PackType: model.PackTypeDetailed, PackComponentPrice: model.ComponentPriceDetailed,
			PackLines: []model.PackLine{
				{ProductID: "workstation", Quantity: 2},
				{ProductID: "ssd", Quantity: 1},
			},
		},
	}
}

func productIDs(lines []*model.OrderLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.ProductID
	}
	return out
}

func quantities(lines []*model.OrderLine) []float64 {
	out := make([]float64, len(lines))
	for i, l := range lines {
		out[i] = l.Quantity
	}
	return out
}
