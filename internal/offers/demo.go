// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package offers

import "github.com/tugotugo/insight/internal/recommend"

// DemoOffers returns the bundled demo snapshot used by the static
// backend. The coordinates cluster around central Madrid so a demo
// request with a Madrid location exercises the location signal.
func DemoOffers() []recommend.Offer {
	return []recommend.Offer{
		{
			ID:              "pack-horno-sol-1",
			EstablishmentID: "est-horno-sol",
			Name:            "Pack sorpresa de panadería",
			Category:        "panaderia",
			Latitude:        40.4169,
			Longitude:       -3.7035,
			OriginalPrice:   12.00,
			DiscountedPrice: 3.99,
			Quantity:        4,
		},
		{
			ID:              "pack-sakura-2",
			EstablishmentID: "est-sakura",
			Name:            "Bandeja variada de sushi",
			Category:        "sushi",
			Latitude:        40.4231,
			Longitude:       -3.6920,
			OriginalPrice:   24.00,
			DiscountedPrice: 9.50,
			Quantity:        2,
		},
		{
			ID:              "pack-trattoria-3",
			EstablishmentID: "est-trattoria",
			Name:            "Pizzas del día",
			Category:        "pizza",
			Latitude:        40.4089,
			Longitude:       -3.6935,
			OriginalPrice:   15.00,
			DiscountedPrice: 5.00,
			Quantity:        3,
		},
		{
			ID:              "pack-verde-4",
			EstablishmentID: "est-verde",
			Name:            "Menú vegetariano sorpresa",
			Category:        "vegetariano",
			Latitude:        40.4312,
			Longitude:       -3.7110,
			OriginalPrice:   14.00,
			DiscountedPrice: 4.75,
			Quantity:        5,
		},
		{
			ID:              "pack-fruteria-5",
			EstablishmentID: "est-fruteria",
			Name:            "Caja de fruta de temporada",
			Category:        "fruteria",
			Latitude:        40.4005,
			Longitude:       -3.7081,
			OriginalPrice:   10.00,
			DiscountedPrice: 3.50,
			Quantity:        6,
		},
	}
}
