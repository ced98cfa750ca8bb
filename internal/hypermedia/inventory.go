package hypermedia

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	// NS is the namespace prefix of every custom link relation.
	NS = "invmanager"

	LinkRelationsURL = "/inventorymanager/link-relations/"
	ErrorProfile     = "/profiles/error/"

	ItemProfile      = "/profiles/item/"
	LocationProfile  = "/profiles/location/"
	WarehouseProfile = "/profiles/warehouse/"
	StockProfile     = "/profiles/stock/"
	CatalogueProfile = "/profiles/catalogue/"
)

// New starts an inventory document with the invmanager namespace registered.
func New(record any) *Document {
	return NewDocument(record).AddNamespace(NS, LinkRelationsURL)
}

// NewError builds the error envelope shared by every failing response.
func NewError(title, detail string) *Document {
	return NewDocument(nil).
		AddError(title, detail).
		AddControl("profile", ErrorProfile)
}

func EntryURL() string      { return "/api/" }
func ItemsURL() string      { return "/api/items/" }
func LocationsURL() string  { return "/api/locations/" }
func WarehousesURL() string { return "/api/warehouses/" }
func StocksURL() string     { return "/api/stocks/" }
func CatalogueURL() string  { return "/api/catalogue/" }

func ItemURL(name string) string {
	return ItemsURL() + url.PathEscape(name) + "/"
}

func LocationURL(id int) string {
	return LocationsURL() + strconv.Itoa(id) + "/"
}

func WarehouseURL(id int) string {
	return WarehousesURL() + strconv.Itoa(id) + "/"
}

func StockURL(warehouseID int, itemName string) string {
	return StocksURL() + strconv.Itoa(warehouseID) + "/item/" + url.PathEscape(itemName) + "/"
}

func StockForItemURL(itemName string) string {
	return StocksURL() + "item/" + url.PathEscape(itemName) + "/"
}

func StockForWarehouseURL(warehouseID int) string {
	return StocksURL() + "warehouse/" + strconv.Itoa(warehouseID) + "/"
}

func CatalogueEntryURL(supplier, itemName string) string {
	return CatalogueURL() + "supplier/" + url.PathEscape(supplier) + "/item/" + url.PathEscape(itemName) + "/"
}

func CatalogueForItemURL(itemName string) string {
	return CatalogueURL() + "item/" + url.PathEscape(itemName) + "/"
}

func CatalogueForSupplierURL(supplier string) string {
	return CatalogueURL() + "supplier/" + url.PathEscape(supplier) + "/"
}

func get(title string) []ControlOption {
	return []ControlOption{WithMethod(http.MethodGet), WithTitle(title)}
}

func (d *Document) AddControlAllItems() *Document {
	return d.AddControl(NS+":items-all", ItemsURL(), get("All items")...)
}

func (d *Document) AddControlAllLocations() *Document {
	return d.AddControl(NS+":locations-all", LocationsURL(), get("All locations")...)
}

func (d *Document) AddControlAllWarehouses() *Document {
	return d.AddControl(NS+":warehouses-all", WarehousesURL(), get("All warehouses")...)
}

func (d *Document) AddControlAllStock() *Document {
	return d.AddControl(NS+":stock-all", StocksURL(), get("All stock")...)
}

func (d *Document) AddControlAllCatalogue() *Document {
	return d.AddControl(NS+":catalogues-all", CatalogueURL(), get("All catalogue entries")...)
}

func (d *Document) AddControlGetItem(name string) *Document {
	return d.AddControl(NS+":item", ItemURL(name), get("Item")...)
}

func (d *Document) AddControlGetLocation(id int) *Document {
	return d.AddControl(NS+":location", LocationURL(id), get("Location")...)
}

func (d *Document) AddControlGetWarehouse(id int) *Document {
	return d.AddControl(NS+":warehouse", WarehouseURL(id), get("Warehouse")...)
}

func (d *Document) AddControlStockForItem(itemName string) *Document {
	return d.AddControl(NS+":stock-item-all", StockForItemURL(itemName), get("Stock of this item")...)
}

func (d *Document) AddControlStockForWarehouse(warehouseID int) *Document {
	return d.AddControl(NS+":stock-warehouse-all", StockForWarehouseURL(warehouseID), get("Stock in this warehouse")...)
}

func (d *Document) AddControlCatalogueForItem(itemName string) *Document {
	return d.AddControl(NS+":catalogue-item-all", CatalogueForItemURL(itemName), get("Catalogue entries for this item")...)
}

func (d *Document) AddControlCatalogueForSupplier(supplier string) *Document {
	return d.AddControl(NS+":catalogue-supplier-all", CatalogueForSupplierURL(supplier), get("Catalogue entries of this supplier")...)
}
