package service

// 列表页可选的每页条数
var listingPageSizes = map[int]bool{10: true, 25: true, 50: true, 100: true}

// 分页默认值
const (
	SearchPageSize         = 10
	DefaultListingPageSize = 25
)

// Pagination 分页位置
type Pagination struct {
	Page   int
	Pages  int
	Size   int
	Offset int
}

// Paginate 计算页数并把越界的页码收回到有效范围
// 结果为空时 pages 为 0、page 为 1
func Paginate(total int64, page, size int) Pagination {
	if size < 1 {
		size = 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}
	if pages == 0 {
		page = 1
	}
	return Pagination{Page: page, Pages: pages, Size: size, Offset: (page - 1) * size}
}

// listingSize 校验列表页每页条数，0 表示默认值
func listingSize(size int) (int, error) {
	if size == 0 {
		return DefaultListingPageSize, nil
	}
	if !listingPageSizes[size] {
		return 0, ErrInvalidFilter
	}
	return size, nil
}
