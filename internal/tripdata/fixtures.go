package tripdata

import (
	"github.com/opsdeck/opsdeck/internal/grid"
	"github.com/opsdeck/opsdeck/internal/panel"
)

// Grid ids used across the console.
const (
	GridTripPlans   = "trip-plans"
	GridQuickOrders = "quick-orders"
)

// Trip status vocabulary.
const (
	StatusPlanned   = "Planned"
	StatusDispatch  = "Ready for Dispatch"
	StatusInTransit = "In Transit"
	StatusDelayed   = "Delayed"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

func statusVariant(status string) string {
	switch status {
	case StatusDelivered:
		return "success"
	case StatusDelayed:
		return "warning"
	case StatusCancelled:
		return "danger"
	case StatusInTransit:
		return "info"
	default:
		return "neutral"
	}
}

func status(s string) grid.StatusCell {
	return grid.StatusCell{Value: s, Variant: statusVariant(s)}
}

// TripPlanColumns is the configured column set for the trip plans grid.
func TripPlanColumns() []grid.Column {
	return []grid.Column{
		{Key: "tripId", Title: "Trip ID", Type: grid.ColumnLink, Sortable: true, Mandatory: true},
		{Key: "status", Title: "Status", Type: grid.ColumnBadge, Sortable: true},
		{Key: "carrier", Title: "Carrier", Type: grid.ColumnEditableText, Sortable: true, Editable: true},
		{Key: "origin", Title: "Origin", Type: grid.ColumnText, Sortable: true},
		{Key: "destination", Title: "Destination", Type: grid.ColumnText, Sortable: true},
		{Key: "window", Title: "Pickup Window", Type: grid.ColumnDateTimeRange},
		{Key: "eta", Title: "ETA", Type: grid.ColumnDate, Sortable: true},
		{Key: "stops", Title: "Stops", Type: grid.ColumnExpandableCount, Sortable: true},
		{Key: "driver", Title: "Driver", Type: grid.ColumnText, SubRow: true},
		{Key: "tractor", Title: "Tractor", Type: grid.ColumnText, SubRow: true},
		{Key: "trailer", Title: "Trailer", Type: grid.ColumnText, SubRow: true},
	}
}

// TripPlanRows is a representative working set for the trip plans grid.
func TripPlanRows() []grid.Row {
	return []grid.Row{
		{
			"tripId": "TP-10241", "status": status(StatusInTransit),
			"carrier": "Knight-Swift", "origin": "Laredo, TX", "destination": "Chicago, IL",
			"window": "2026-09-01 06:00 - 2026-09-01 10:00", "eta": "2026-09-03",
			"stops": 3, "driver": "M. Alvarez", "tractor": "KT-2211", "trailer": "TR-8841",
		},
		{
			"tripId": "TP-10242", "status": status(StatusDelivered),
			"carrier": "Schneider", "origin": "Atlanta, GA", "destination": "Memphis, TN",
			"window": "2026-08-30 08:00 - 2026-08-30 12:00", "eta": "2026-08-31",
			"stops": 1, "driver": "D. Okafor", "tractor": "SN-0193", "trailer": "TR-1120",
		},
		{
			"tripId": "TP-10243", "status": status(StatusDelayed),
			"carrier": "Werner", "origin": "Denver, CO", "destination": "Salt Lake City, UT",
			"window": "2026-09-01 05:00 - 2026-09-01 09:00", "eta": "2026-09-02",
			"stops": 2, "driver": "S. Brandt", "tractor": "WE-7420", "trailer": "TR-3307",
		},
		{
			"tripId": "TP-10244", "status": status(StatusPlanned),
			"carrier": "J.B. Hunt", "origin": "Phoenix, AZ", "destination": "Las Vegas, NV",
			"window": "2026-09-04 07:00 - 2026-09-04 11:00", "eta": "2026-09-04",
			"stops": 1, "driver": nil, "tractor": nil, "trailer": "TR-5512",
		},
		{
			"tripId": "TP-10245", "status": status(StatusDispatch),
			"carrier": "Knight-Swift", "origin": "Dallas, TX", "destination": "Houston, TX",
			"window": "2026-09-02 06:30 - 2026-09-02 09:30", "eta": "2026-09-02",
			"stops": 2, "driver": "L. Pham", "tractor": "KT-2290", "trailer": "TR-9925",
		},
		{
			"tripId": "TP-10246", "status": status(StatusInTransit),
			"carrier": "Prime Inc", "origin": "Springfield, MO", "destination": "Columbus, OH",
			"window": "2026-08-31 10:00 - 2026-08-31 14:00", "eta": "2026-09-02",
			"stops": 4, "driver": "A. Castillo", "tractor": "PR-4471", "trailer": "TR-6638",
		},
		{
			"tripId": "TP-10247", "status": status(StatusCancelled),
			"carrier": "Schneider", "origin": "Reno, NV", "destination": "Boise, ID",
			"window": "2026-09-03 06:00 - 2026-09-03 10:00", "eta": nil,
			"stops": 0, "driver": nil, "tractor": nil, "trailer": nil,
		},
		{
			"tripId": "TP-10248", "status": status(StatusDelivered),
			"carrier": "Werner", "origin": "Portland, OR", "destination": "Seattle, WA",
			"window": "2026-08-29 07:00 - 2026-08-29 11:00", "eta": "2026-08-29",
			"stops": 1, "driver": "R. Nakamura", "tractor": "WE-7111", "trailer": "TR-2210",
		},
		{
			"tripId": "TP-10249", "status": status(StatusInTransit),
			"carrier": "J.B. Hunt", "origin": "Nashville, TN", "destination": "Louisville, KY",
			"window": "2026-09-01 09:00 - 2026-09-01 13:00", "eta": "2026-09-02",
			"stops": 2, "driver": "T. Whitfield", "tractor": "JB-8803", "trailer": "TR-4190",
		},
		{
			"tripId": "TP-10250", "status": status(StatusPlanned),
			"carrier": "Prime Inc", "origin": "Tucson, AZ", "destination": "El Paso, TX",
			"window": "2026-09-05 06:00 - 2026-09-05 10:00", "eta": "2026-09-05",
			"stops": 1, "driver": nil, "tractor": "PR-4502", "trailer": nil,
		},
		{
			"tripId": "TP-10251", "status": status(StatusDelayed),
			"carrier": "Knight-Swift", "origin": "Oklahoma City, OK", "destination": "Kansas City, MO",
			"window": "2026-08-31 05:00 - 2026-08-31 08:00", "eta": "2026-09-01",
			"stops": 3, "driver": "E. Morales", "tractor": "KT-2305", "trailer": "TR-7782",
		},
		{
			"tripId": "TP-10252", "status": status(StatusDispatch),
			"carrier": "Schneider", "origin": "Minneapolis, MN", "destination": "Des Moines, IA",
			"window": "2026-09-02 08:00 - 2026-09-02 12:00", "eta": "2026-09-02",
			"stops": 1, "driver": "K. Svoboda", "tractor": "SN-0277", "trailer": "TR-8816",
		},
	}
}

// TripPanelDefaults is the configured field set for the trip detail
// panel. Remote or user-saved settings override it.
func TripPanelDefaults() panel.Settings {
	return panel.Settings{
		Title:           "Trip Detail",
		Width:           panel.WidthThird,
		Collapsible:     true,
		StatusIndicator: true,
		Fields: []panel.FieldSpec{
			{Key: "tripId", Label: "Trip ID", Type: panel.FieldText, Order: 0, Width: "half", Mandatory: true},
			{Key: "status", Label: "Status", Type: panel.FieldText, Order: 1, Width: "half"},
			{Key: "carrier", Label: "Carrier", Type: panel.FieldSearch, Order: 2, Width: "half"},
			{Key: "driver", Label: "Driver", Type: panel.FieldText, Order: 3, Width: "half"},
			{Key: "origin", Label: "Origin", Type: panel.FieldText, Order: 4, Width: "half"},
			{Key: "destination", Label: "Destination", Type: panel.FieldText, Order: 5, Width: "half"},
			{Key: "window", Label: "Pickup Window", Type: panel.FieldText, Order: 6, Width: "full"},
			{Key: "eta", Label: "ETA", Type: panel.FieldDate, Order: 7, Width: "half"},
			{Key: "stops", Label: "Stops", Type: panel.FieldText, Order: 8, Width: "quarter"},
			{Key: "tractor", Label: "Tractor", Type: panel.FieldText, Order: 9, Width: "half", Hidden: true},
			{Key: "trailer", Label: "Trailer", Type: panel.FieldText, Order: 10, Width: "half", Hidden: true},
		},
	}
}

// QuickOrderColumns is the configured column set for the quick orders grid.
func QuickOrderColumns() []grid.Column {
	return []grid.Column{
		{Key: "orderId", Title: "Order ID", Type: grid.ColumnLink, Sortable: true, Mandatory: true},
		{Key: "status", Title: "Status", Type: grid.ColumnBadge, Sortable: true},
		{Key: "customer", Title: "Customer", Type: grid.ColumnText, Sortable: true},
		{Key: "commodity", Title: "Commodity", Type: grid.ColumnTextWithTooltip},
		{Key: "pallets", Title: "Pallets", Type: grid.ColumnText, Sortable: true},
		{Key: "requested", Title: "Requested", Type: grid.ColumnDate, Sortable: true},
	}
}

// QuickOrderRows is a representative working set for the quick orders grid.
func QuickOrderRows() []grid.Row {
	return []grid.Row{
		{"orderId": "QO-5501", "status": status(StatusPlanned), "customer": "Midwest Grain Co", "commodity": "Bagged feed, keep dry", "pallets": 18, "requested": "2026-09-03"},
		{"orderId": "QO-5502", "status": status(StatusInTransit), "customer": "Pacific Fresh", "commodity": "Chilled produce", "pallets": 22, "requested": "2026-09-01"},
		{"orderId": "QO-5503", "status": status(StatusDelivered), "customer": "Ironline Supply", "commodity": "Steel fittings", "pallets": 8, "requested": "2026-08-28"},
		{"orderId": "QO-5504", "status": status(StatusPlanned), "customer": "Midwest Grain Co", "commodity": "Seed pallets", "pallets": 12, "requested": "2026-09-06"},
		{"orderId": "QO-5505", "status": status(StatusCancelled), "customer": "Bluepeak Retail", "commodity": "Mixed dry goods", "pallets": 26, "requested": nil},
		{"orderId": "QO-5506", "status": status(StatusDelayed), "customer": "Pacific Fresh", "commodity": "Frozen seafood, -18C", "pallets": 20, "requested": "2026-08-31"},
	}
}
