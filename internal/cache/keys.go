package cache

import "fmt"

const keyPrefix = "dashboard"

// Only raw read-model records are cached. Statuses depend on the clock and
// are computed per request.

func ItemKey(id string) string {
	return fmt.Sprintf("%s:items:id:%s", keyPrefix, id)
}

func ItemsPageKey(page, pageSize int) string {
	return fmt.Sprintf("%s:items:page:%d:%d", keyPrefix, page, pageSize)
}

func AllItemsKey() string {
	return keyPrefix + ":items:all"
}

func SaleKey(id string) string {
	return fmt.Sprintf("%s:sales:id:%s", keyPrefix, id)
}

func AllSalesKey() string {
	return keyPrefix + ":sales:all"
}

func ItemSalesKey(itemID string) string {
	return fmt.Sprintf("%s:sales:item:%s", keyPrefix, itemID)
}

// ItemsPattern matches every cached item entry
func ItemsPattern() string {
	return keyPrefix + ":items:*"
}

// SalesPattern matches every cached sale entry
func SalesPattern() string {
	return keyPrefix + ":sales:*"
}
