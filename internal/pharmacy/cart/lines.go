package cart

import "github.com/wellport/wellport-backend/pkg/enums"

// Add merges an item into the line set. An existing (vendor, product) line
// gains quantity; a new line is appended. Adding resets the vendor cart
// reference because the quantity no longer matches what the vendor saw.
func Add(lines []Line, item Line) []Line {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	for i := range lines {
		if lines[i].SameItem(item.Vendor, item.ProductID) {
			lines[i].Quantity += item.Quantity
			lines[i].ServerCartRefID = 0
			return lines
		}
	}
	item.ServerCartRefID = 0
	item.Snapshot = nil
	return append(lines, item)
}

// Decrement lowers the quantity of a line by one. Dropping from one removes
// the line entirely rather than leaving a zero-quantity entry behind.
func Decrement(lines []Line, vendor enums.PharmacyVendor, productID string) []Line {
	for i := range lines {
		if !lines[i].SameItem(vendor, productID) {
			continue
		}
		if lines[i].Quantity <= 1 {
			return append(lines[:i], lines[i+1:]...)
		}
		lines[i].Quantity--
		lines[i].ServerCartRefID = 0
		return lines
	}
	return lines
}

// Remove deletes a line regardless of quantity.
func Remove(lines []Line, vendor enums.PharmacyVendor, productID string) []Line {
	for i := range lines {
		if lines[i].SameItem(vendor, productID) {
			return append(lines[:i], lines[i+1:]...)
		}
	}
	return lines
}

// Find returns the line for a vendor-scoped product, if present.
func Find(lines []Line, vendor enums.PharmacyVendor, productID string) (Line, bool) {
	for _, line := range lines {
		if line.SameItem(vendor, productID) {
			return line, true
		}
	}
	return Line{}, false
}

// Unsynced returns the product ids of lines with no vendor cart reference.
func Unsynced(lines []Line) []string {
	var ids []string
	for _, line := range lines {
		if !line.Synced() {
			ids = append(ids, string(line.Vendor)+"/"+line.ProductID)
		}
	}
	return ids
}
