package services

import (
	"sort"
	"strings"
	"time"

	"techStore/entities"
	"techStore/models"

	"github.com/shopspring/decimal"
)

func decimalFromQuantity(quantity int) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity))
}

// In-memory repository fakes for the service tests. They keep the same
// error contract as the real repositories but hold everything in maps.

type fakeProductRepo struct {
	products map[int]models.Product_db
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int]models.Product_db{}}
}

func (f *fakeProductRepo) put(p models.Product_db) {
	f.products[p.Id] = p
}

func (f *fakeProductRepo) GetProductById(id int) (models.Product_db, bool, error) {
	p, ok := f.products[id]
	return p, ok, nil
}

func (f *fakeProductRepo) ListProducts(filter models.ProductFilter) ([]entities.ProductPreview, error) {
	var prods []entities.ProductPreview
	for _, p := range f.products {
		if !p.Active {
			continue
		}
		prods = append(prods, entities.ProductPreview{Id: p.Id, Name: p.Name, Slug: p.Slug, Price: p.Price, InStock: p.Stock > 0})
	}
	sort.Slice(prods, func(i, j int) bool { return prods[i].Id < prods[j].Id })
	return prods, nil
}

func (f *fakeProductRepo) CreateProduct(input models.ProductInput) (int, error) {
	id := len(f.products) + 1
	f.products[id] = models.Product_db{Id: id, Name: input.Name, Slug: input.Slug}
	return id, nil
}

func (f *fakeProductRepo) UpdateProduct(input models.ProductInput) (models.Product_db, error) {
	p, ok := f.products[input.Id]
	if !ok {
		return models.Product_db{}, models.ErrNotFoundError
	}
	return p, nil
}

func (f *fakeProductRepo) SetStock(productId int, stock int) error {
	p, ok := f.products[productId]
	if !ok {
		return models.ErrNotFoundError
	}
	p.Stock = stock
	f.products[productId] = p
	return nil
}

type fakeCartRepo struct {
	nextId int
	carts  map[int]models.Cart_db // keyed by user id
	items  map[int]map[int]int    // cart id -> product id -> quantity
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[int]models.Cart_db{}, items: map[int]map[int]int{}}
}

func (f *fakeCartRepo) GetOrCreateCart(userId int) (models.Cart_db, error) {
	if cart, ok := f.carts[userId]; ok {
		return cart, nil
	}
	f.nextId++
	cart := models.Cart_db{Id: f.nextId, UserId: userId, Updated: time.Now()}
	f.carts[userId] = cart
	f.items[cart.Id] = map[int]int{}
	return cart, nil
}

func (f *fakeCartRepo) GetCartItems(cartId int) ([]models.CartItem_db, error) {
	var productIds []int
	for productId := range f.items[cartId] {
		productIds = append(productIds, productId)
	}
	sort.Ints(productIds)
	var items []models.CartItem_db
	for i, productId := range productIds {
		items = append(items, models.CartItem_db{Id: i + 1, CartId: cartId, ProductId: productId, Quantity: f.items[cartId][productId]})
	}
	return items, nil
}

func (f *fakeCartRepo) AddItem(cartId int, productId int, quantity int, override bool) error {
	if quantity < 1 {
		return models.ErrBadRequest
	}
	if f.items[cartId] == nil {
		f.items[cartId] = map[int]int{}
	}
	if override {
		f.items[cartId][productId] = quantity
	} else {
		f.items[cartId][productId] = f.items[cartId][productId] + quantity
	}
	return nil
}

func (f *fakeCartRepo) RemoveItem(cartId int, productId int) error {
	delete(f.items[cartId], productId)
	return nil
}

func (f *fakeCartRepo) ClearItems(cartId int) error {
	f.items[cartId] = map[int]int{}
	return nil
}

type fakeSessionCartRepo struct {
	carts   map[string]entities.CartData
	deleted []string
}

func newFakeSessionCartRepo() *fakeSessionCartRepo {
	return &fakeSessionCartRepo{carts: map[string]entities.CartData{}}
}

func (f *fakeSessionCartRepo) SetCart(token string, cart entities.CartData) error {
	items := map[int]int{}
	for productId, quantity := range cart.Items {
		items[productId] = quantity
	}
	f.carts[token] = entities.CartData{Items: items}
	return nil
}

func (f *fakeSessionCartRepo) GetCart(token string) (entities.CartData, error) {
	cart, ok := f.carts[token]
	if !ok {
		return entities.CartData{Items: map[int]int{}}, nil
	}
	items := map[int]int{}
	for productId, quantity := range cart.Items {
		items[productId] = quantity
	}
	return entities.CartData{Items: items}, nil
}

func (f *fakeSessionCartRepo) DeleteCart(token string) error {
	delete(f.carts, token)
	f.deleted = append(f.deleted, token)
	return nil
}

type fakeUserRepo struct {
	users map[int]models.User_db
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]models.User_db{}}
}

func (f *fakeUserRepo) GetUserById(id int) (models.User_db, bool, error) {
	u, ok := f.users[id]
	return u, ok, nil
}

func (f *fakeUserRepo) GetUserByName(name string) (models.User_db, bool, error) {
	for _, u := range f.users {
		if u.Username == name {
			return u, true, nil
		}
	}
	return models.User_db{}, false, nil
}

func (f *fakeUserRepo) EncryptPassword(userPass string) (string, error) {
	return "hashed:" + userPass, nil
}

func (f *fakeUserRepo) VerifyPassword(hashedPassword string, sentPassword string) bool {
	return hashedPassword == "hashed:"+sentPassword
}

func (f *fakeUserRepo) UpdatePassword(userId int, newPassword string) error {
	u, ok := f.users[userId]
	if !ok {
		return models.ErrNotFoundError
	}
	u.Password = newPassword
	f.users[userId] = u
	return nil
}

func (f *fakeUserRepo) UpdateProfile(userId int, profile models.ProfileData) error {
	u, ok := f.users[userId]
	if !ok {
		return models.ErrNotFoundError
	}
	u.Email = profile.Email
	u.FirstName = profile.FirstName
	u.LastName = profile.LastName
	u.Phone = profile.Phone
	u.Address = profile.Address
	f.users[userId] = u
	return nil
}

func (f *fakeUserRepo) AddNewUser(uModel models.User_db) (int, error) {
	id := len(f.users) + 1
	uModel.Id = id
	f.users[id] = uModel
	return id, nil
}

type fakeOrder struct {
	order models.Order_db
	items []models.OrderItem_db
}

type fakeOrderRepo struct {
	carts         *fakeCartRepo
	nextId        int
	orders        map[int]fakeOrder
	createCalls   int
	conflictsLeft int
	lastCartId    int
}

func newFakeOrderRepo(carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{carts: carts, orders: map[int]fakeOrder{}}
}

func (f *fakeOrderRepo) CountOrdersByPrefix(prefix string) (int, error) {
	count := 0
	for _, o := range f.orders {
		if strings.HasPrefix(o.order.Number, prefix) {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) CreateOrderFromCart(order models.Order_db, items []models.OrderItem_db, cartId int) (int, error) {
	f.createCalls++
	f.lastCartId = cartId
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return 0, models.ErrOrderNumberConflict
	}
	for _, o := range f.orders {
		if o.order.Number == order.Number {
			return 0, models.ErrOrderNumberConflict
		}
	}
	f.nextId++
	order.Id = f.nextId
	f.orders[order.Id] = fakeOrder{order: order, items: items}
	if f.carts != nil {
		f.carts.ClearItems(cartId)
	}
	return order.Id, nil
}

func (f *fakeOrderRepo) GetOrderById(orderId int) (entities.OrderView, error) {
	o, ok := f.orders[orderId]
	if !ok {
		return entities.OrderView{}, models.ErrNotFoundError
	}
	view := entities.OrderView{
		Id:       o.order.Id,
		UserId:   o.order.UserId,
		Number:   o.order.Number,
		Created:  o.order.Created,
		Status:   o.order.Status,
		Total:    o.order.Total,
		FullName: o.order.FullName,
		Email:    o.order.Email,
		Phone:    o.order.Phone,
		Address:  o.order.Address,
		Payment:  o.order.Payment,
		IsPaid:   o.order.IsPaid,
	}
	if o.order.PaidDate.Valid {
		view.PaidDate = &o.order.PaidDate.Time
	}
	for _, item := range o.items {
		view.Lines = append(view.Lines, entities.OrderLine{
			ProductId: item.ProductId,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Sum:       item.Price.Mul(decimalFromQuantity(item.Quantity)),
		})
	}
	return view, nil
}

func (f *fakeOrderRepo) GetOrderOwnerAndStatus(orderId int) (int, string, error) {
	o, ok := f.orders[orderId]
	if !ok {
		return 0, "", models.ErrNotFoundError
	}
	return o.order.UserId, o.order.Status, nil
}

func (f *fakeOrderRepo) SetOrderStatus(orderId int, status string) error {
	o, ok := f.orders[orderId]
	if !ok {
		return models.ErrNotFoundError
	}
	o.order.Status = status
	f.orders[orderId] = o
	return nil
}

func (f *fakeOrderRepo) MarkPaid(orderId int, when time.Time) error {
	o, ok := f.orders[orderId]
	if !ok {
		return models.ErrNotFoundError
	}
	if o.order.IsPaid {
		return models.ErrNotAllowed
	}
	o.order.IsPaid = true
	o.order.PaidDate.Valid = true
	o.order.PaidDate.Time = when
	f.orders[orderId] = o
	return nil
}

func (f *fakeOrderRepo) SearchOrders(data models.OrderSearchData) ([]entities.OrderView, error) {
	var ids []int
	for id, o := range f.orders {
		if data.UserId != nil && o.order.UserId != *data.UserId {
			continue
		}
		if data.Status != nil && o.order.Status != *data.Status {
			continue
		}
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	var orders []entities.OrderView
	for _, id := range ids {
		view, err := f.GetOrderById(id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, view)
	}
	return orders, nil
}

type fakeReviewRepo struct {
	nextId  int
	reviews map[int]models.Review_db
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[int]models.Review_db{}}
}

func (f *fakeReviewRepo) AddReview(review models.Review_db) (int, error) {
	for _, r := range f.reviews {
		if r.ProductId == review.ProductId && r.UserId == review.UserId {
			return 0, models.ErrDuplicateReview
		}
	}
	f.nextId++
	review.Id = f.nextId
	review.Created = time.Now()
	f.reviews[review.Id] = review
	return review.Id, nil
}

func (f *fakeReviewRepo) GetReviewById(reviewId int) (models.Review_db, bool, error) {
	r, ok := f.reviews[reviewId]
	return r, ok, nil
}

func (f *fakeReviewRepo) DeleteReview(reviewId int) error {
	delete(f.reviews, reviewId)
	return nil
}

func (f *fakeReviewRepo) GetProductReviews(productId int) ([]entities.ReviewView, error) {
	var reviews []entities.ReviewView
	for _, r := range f.reviews {
		if r.ProductId == productId {
			reviews = append(reviews, entities.ReviewView{Id: r.Id, Rating: r.Rating, Body: r.Body, Created: r.Created})
		}
	}
	return reviews, nil
}

func (f *fakeReviewRepo) GetRatingSummary(productId int) (float64, int, error) {
	sum, count := 0, 0
	for _, r := range f.reviews {
		if r.ProductId == productId {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeCategoryRepo struct {
	categories map[int]models.Category_db
	brands     map[int]models.Brand_db
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[int]models.Category_db{}, brands: map[int]models.Brand_db{}}
}

func (f *fakeCategoryRepo) GetAllCategories() ([]models.Category_db, error) {
	var cats []models.Category_db
	for _, cat := range f.categories {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].Id < cats[j].Id })
	return cats, nil
}

func (f *fakeCategoryRepo) GetCategoryBySlug(slug string) (models.Category_db, bool, error) {
	for _, cat := range f.categories {
		if cat.Slug == slug {
			return cat, true, nil
		}
	}
	return models.Category_db{}, false, nil
}

func (f *fakeCategoryRepo) GetCategoryById(id int) (models.Category_db, bool, error) {
	cat, ok := f.categories[id]
	return cat, ok, nil
}

func (f *fakeCategoryRepo) GetBrandById(id int) (models.Brand_db, bool, error) {
	brand, ok := f.brands[id]
	return brand, ok, nil
}

func (f *fakeCategoryRepo) CreateCategory(cat models.Category_db) (int, error) {
	if cat.Name == "" || cat.Slug == "" {
		return 0, models.ErrBadRequest
	}
	cat.Id = len(f.categories) + 1
	f.categories[cat.Id] = cat
	return cat.Id, nil
}

func (f *fakeCategoryRepo) UpdateCategory(cat models.Category_db) error {
	if _, ok := f.categories[cat.Id]; !ok {
		return models.ErrNotFoundError
	}
	f.categories[cat.Id] = cat
	return nil
}

func (f *fakeCategoryRepo) GetAllBrands() ([]models.Brand_db, error) {
	var brands []models.Brand_db
	for _, brand := range f.brands {
		brands = append(brands, brand)
	}
	sort.Slice(brands, func(i, j int) bool { return brands[i].Id < brands[j].Id })
	return brands, nil
}

func (f *fakeCategoryRepo) GetBrandBySlug(slug string) (models.Brand_db, bool, error) {
	for _, brand := range f.brands {
		if brand.Slug == slug {
			return brand, true, nil
		}
	}
	return models.Brand_db{}, false, nil
}

func (f *fakeCategoryRepo) CreateBrand(brand models.Brand_db) (int, error) {
	if brand.Name == "" || brand.Slug == "" {
		return 0, models.ErrBadRequest
	}
	brand.Id = len(f.brands) + 1
	f.brands[brand.Id] = brand
	return brand.Id, nil
}
