package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"artconsole/config"
	articlesapi "artconsole/internal/api/articles"
	artistsapi "artconsole/internal/api/artists"
	artworksapi "artconsole/internal/api/artworks"
	authapi "artconsole/internal/api/auth"
	galleriesapi "artconsole/internal/api/galleries"
	ordersapi "artconsole/internal/api/orders"
	productsapi "artconsole/internal/api/products"
	reviewsapi "artconsole/internal/api/reviews"
	"artconsole/internal/domain/artworks"
	"artconsole/internal/form"
	"artconsole/internal/session"
	"artconsole/internal/transport"
)

const defaultBaseURL = "http://localhost:8080"

type app struct {
	ctx  context.Context
	sess *session.Session

	auth      *authapi.Client
	artists   *artistsapi.Client
	artworks  *artworksapi.Client
	products  *productsapi.Client
	galleries *galleriesapi.Client
	articles  *articlesapi.Client
	orders    *ordersapi.Client
	reviews   *reviewsapi.Client
}

func main() {
	config.LoadEnv()

	global := flag.NewFlagSet("artcli", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", config.TOKEN_PATH, "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	sess, err := session.Open(*tokenPath)
	if err != nil {
		log.Fatalf("open session: %v", err)
	}
	t := transport.New(sess, transport.WithBaseURL(*baseURL))

	a := &app{
		ctx:       context.Background(),
		sess:      sess,
		auth:      authapi.NewClient(t, sess),
		artists:   artistsapi.NewClient(t),
		artworks:  artworksapi.NewClient(t),
		products:  productsapi.NewClient(t),
		galleries: galleriesapi.NewClient(t),
		articles:  articlesapi.NewClient(t),
		orders:    ordersapi.NewClient(t),
		reviews:   reviewsapi.NewClient(t),
	}

	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}
	rest := args[1:]
	if len(args) > 2 {
		rest = args[2:]
	}

	switch cmd {
	case "auth":
		a.handleAuth(sub, rest)
	case "artists":
		a.handleArtists(sub, rest)
	case "artworks":
		a.handleArtworks(sub, rest)
	case "products":
		a.handleProducts(sub, rest)
	case "galleries":
		a.handleGalleries(sub, rest)
	case "articles":
		a.handleArticles(sub, rest)
	case "orders":
		a.handleOrders(sub, rest)
	case "reviews":
		a.handleReviews(sub, rest)
	case "export":
		a.handleExport(sub, rest)
	default:
		printUsage()
		os.Exit(1)
	}
}

func (a *app) handleAuth(sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}
		if err := a.auth.Login(a.ctx, *email, *password); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		fmt.Println("✅ logged in")
	case "logout":
		if err := a.auth.Logout(a.ctx); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("✅ logged out")
	case "status":
		if a.sess.Authenticated() {
			fmt.Println("authenticated")
		} else {
			fmt.Println("not authenticated")
		}
	default:
		log.Fatal("usage: artcli auth <login|logout|status>")
	}
}

func (a *app) handleArtists(sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("artists list", flag.ExitOnError)
		search := fs.String("search", "", "search term")
		status := fs.String("status", "", "status filter")
		page := fs.Int("page", 1, "page number")
		perPage := fs.Int("per-page", 20, "page size")
		_ = fs.Parse(args)

		pageOut, err := a.artists.List(a.ctx, artistsapi.Filters{
			Search: *search, Status: *status, Page: *page, PerPage: *perPage,
		})
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(pageOut)
	case "show":
		slug := mustSlug(args)
		out, err := a.artists.Get(a.ctx, slug)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(out)
	case "create":
		fs := flag.NewFlagSet("artists create", flag.ExitOnError)
		name := fs.String("name", "", "artist name")
		bio := fs.String("bio", "", "biography")
		status := fs.String("status", "draft", "status")
		featured := fs.Bool("featured", false, "featured flag")
		avatar := fs.String("avatar", "", "avatar image path")
		_ = fs.Parse(args)
		if *name == "" {
			log.Fatal("name is required")
		}

		d := artistsapi.NewDraft()
		d.Name = *name
		d.Bio = *bio
		d.Status = *status
		d.Featured = *featured
		if *avatar != "" {
			stageFile(d.Avatar, *avatar)
		}
		out, err := a.artists.Create(a.ctx, d)
		if err != nil {
			log.Fatalf("create failed: %v", err)
		}
		printJSON(out)
	case "update":
		fs := flag.NewFlagSet("artists update", flag.ExitOnError)
		slug := fs.String("slug", "", "artist slug")
		name := fs.String("name", "", "artist name")
		bio := fs.String("bio", "", "biography")
		status := fs.String("status", "", "status")
		featured := fs.Bool("featured", false, "featured flag")
		avatar := fs.String("avatar", "", "new avatar image path")
		removeAvatar := fs.Bool("remove-avatar", false, "remove the current avatar")
		_ = fs.Parse(args)
		if *slug == "" {
			log.Fatal("slug is required")
		}

		current, err := a.artists.Get(a.ctx, *slug)
		if err != nil {
			log.Fatalf("fetch failed: %v", err)
		}
		d := artistsapi.DraftFrom(current)
		if *name != "" {
			d.Name = *name
		}
		if *bio != "" {
			d.Bio = *bio
		}
		if *status != "" {
			d.Status = *status
		}
		d.Featured = *featured
		if *removeAvatar && current.Avatar != nil {
			d.Avatar.RemoveExisting(current.Avatar.ID)
		}
		if *avatar != "" {
			stageFile(d.Avatar, *avatar)
		}
		out, err := a.artists.Update(a.ctx, *slug, d)
		if err != nil {
			log.Fatalf("update failed: %v", err)
		}
		printJSON(out)
	case "delete":
		slug := mustSlug(args)
		if err := a.artists.Delete(a.ctx, slug); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted", slug)
	case "toggle-featured":
		slug := mustSlug(args)
		out, err := a.artists.ToggleFeatured(a.ctx, slug)
		if err != nil {
			log.Fatalf("toggle failed: %v", err)
		}
		printJSON(out)
	default:
		log.Fatal("usage: artcli artists <list|show|create|update|delete|toggle-featured>")
	}
}

func (a *app) handleArtworks(sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("artworks list", flag.ExitOnError)
		search := fs.String("search", "", "search term")
		status := fs.String("status", "", "status filter")
		artist := fs.String("artist", "", "artist slug filter")
		page := fs.Int("page", 1, "page number")
		perPage := fs.Int("per-page", 20, "page size")
		_ = fs.Parse(args)

		pageOut, err := a.artworks.List(a.ctx, artworksapi.Filters{
			Search: *search, Status: *status, ArtistSlug: *artist,
			Page: *page, PerPage: *perPage,
		})
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(pageOut)
	case "show":
		slug := mustSlug(args)
		out, err := a.artworks.Get(a.ctx, slug)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(out)
	case "create":
		fs := flag.NewFlagSet("artworks create", flag.ExitOnError)
		title := fs.String("title", "", "artwork title")
		artist := fs.String("artist", "", "artist slug")
		year := fs.String("year", "", "year")
		medium := fs.String("medium", "", "medium")
		price := fs.String("price", "", "price")
		status := fs.String("status", "draft", "status")
		cover := fs.String("cover", "", "cover image path")
		_ = fs.Parse(args)
		if *title == "" {
			log.Fatal("title is required")
		}

		d := artworksapi.NewDraft()
		d.Title = *title
		d.ArtistSlug = *artist
		d.Year = *year
		d.Medium = *medium
		d.Price = *price
		d.Status = *status
		if *cover != "" {
			stageFile(d.Cover, *cover)
		}
		out, err := a.artworks.Create(a.ctx, d)
		if err != nil {
			log.Fatalf("create failed: %v", err)
		}
		printJSON(out)
	case "delete":
		slug := mustSlug(args)
		if err := a.artworks.Delete(a.ctx, slug); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted", slug)
	case "toggle-featured":
		slug := mustSlug(args)
		out, err := a.artworks.ToggleFeatured(a.ctx, slug)
		if err != nil {
			log.Fatalf("toggle failed: %v", err)
		}
		printJSON(out)
	default:
		log.Fatal("usage: artcli artworks <list|show|create|delete|toggle-featured>")
	}
}

func (a *app) handleProducts(sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("products list", flag.ExitOnError)
		search := fs.String("search", "", "search term")
		inStock := fs.String("in-stock", "", "stock filter (1 or 0)")
		page := fs.Int("page", 1, "page number")
		perPage := fs.Int("per-page", 20, "page size")
		_ = fs.Parse(args)

		f := productsapi.Filters{Search: *search, Page: *page, PerPage: *perPage}
		if *inStock != "" {
			v := *inStock == "1"
			f.InStock = &v
		}
		pageOut, err := a.products.List(a.ctx, f)
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(pageOut)
	case "show":
		slug := mustSlug(args)
		out, err := a.products.Get(a.ctx, slug)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(out)
	case "delete":
		slug := mustSlug(args)
		if err := a.products.Delete(a.ctx, slug); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted", slug)
	case "toggle-stock":
		slug := mustSlug(args)
		out, err := a.products.ToggleStock(a.ctx, slug)
		if err != nil {
			log.Fatalf("toggle failed: %v", err)
		}
		printJSON(out)
	default:
		log.Fatal("usage: artcli products <list|show|delete|toggle-stock>")
	}
}

func (a *app) handleGalleries(sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("galleries list", flag.ExitOnError)
		search := fs.String("search", "", "search term")
		status := fs.String("status", "", "status filter")
		page := fs.Int("page", 1, "page number")
		perPage := fs.Int("per-page", 20, "page size")
		_ = fs.Parse(args)

		pageOut, err := a.galleries.List(a.ctx, galleriesapi.Filters{
			Search: *search, Status: *status, Page: *page, PerPage: *perPage,
		})
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(pageOut)
	case "show":
		slug := mustSlug(args)
		out, err := a.galleries.Get(a.ctx, slug)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(out)
	case "delete":
		slug := mustSlug(args)
		if err := a.galleries.Delete(a.ctx, slug); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted", slug)
	default:
		log.Fatal("usage: artcli galleries <list|show|delete>")
	}
}

func (a *app) handleArticles(sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("articles list", flag.ExitOnError)
		search := fs.String("search", "", "search term")
		status := fs.String("status", "", "status filter")
		page := fs.Int("page", 1, "page number")
		perPage := fs.Int("per-page", 20, "page size")
		_ = fs.Parse(args)

		pageOut, err := a.articles.List(a.ctx, articlesapi.Filters{
			Search: *search, Status: *status, Page: *page, PerPage: *perPage,
		})
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(pageOut)
	case "show":
		slug := mustSlug(args)
		out, err := a.articles.Get(a.ctx, slug)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(out)
	case "like":
		slug := mustSlug(args)
		out, err := a.articles.Like(a.ctx, slug)
		if err != nil {
			log.Fatalf("like failed: %v", err)
		}
		printJSON(out)
	case "delete":
		slug := mustSlug(args)
		if err := a.articles.Delete(a.ctx, slug); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted", slug)
	default:
		log.Fatal("usage: artcli articles <list|show|like|delete>")
	}
}

func (a *app) handleOrders(sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("orders list", flag.ExitOnError)
		search := fs.String("search", "", "search term")
		status := fs.String("status", "", "status filter")
		payment := fs.String("payment", "", "payment status filter")
		page := fs.Int("page", 1, "page number")
		perPage := fs.Int("per-page", 20, "page size")
		_ = fs.Parse(args)

		pageOut, err := a.orders.List(a.ctx, ordersapi.Filters{
			Search: *search, Status: *status, PaymentStatus: *payment,
			Page: *page, PerPage: *perPage,
		})
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(pageOut)
	case "show":
		id := mustID(args)
		out, err := a.orders.Get(a.ctx, id)
		if err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(out)
	case "set-status":
		fs := flag.NewFlagSet("orders set-status", flag.ExitOnError)
		id := fs.Uint("id", 0, "order id")
		status := fs.String("status", "", "new status")
		_ = fs.Parse(args)
		if *id == 0 || *status == "" {
			log.Fatal("id and status are required")
		}
		out, err := a.orders.UpdateStatus(a.ctx, uint(*id), *status)
		if err != nil {
			log.Fatalf("set-status failed: %v", err)
		}
		printJSON(out)
	case "set-payment":
		fs := flag.NewFlagSet("orders set-payment", flag.ExitOnError)
		id := fs.Uint("id", 0, "order id")
		status := fs.String("status", "", "new payment status")
		_ = fs.Parse(args)
		if *id == 0 || *status == "" {
			log.Fatal("id and status are required")
		}
		out, err := a.orders.UpdatePaymentStatus(a.ctx, uint(*id), *status)
		if err != nil {
			log.Fatalf("set-payment failed: %v", err)
		}
		printJSON(out)
	default:
		log.Fatal("usage: artcli orders <list|show|set-status|set-payment>")
	}
}

func (a *app) handleReviews(sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("reviews list", flag.ExitOnError)
		status := fs.String("status", "", "status filter")
		artwork := fs.String("artwork", "", "artwork slug filter")
		page := fs.Int("page", 1, "page number")
		perPage := fs.Int("per-page", 20, "page size")
		_ = fs.Parse(args)

		pageOut, err := a.reviews.List(a.ctx, reviewsapi.Filters{
			Status: *status, ArtworkSlug: *artwork, Page: *page, PerPage: *perPage,
		})
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(pageOut)
	case "approve", "reject":
		id := mustID(args)
		status := "approved"
		if sub == "reject" {
			status = "rejected"
		}
		out, err := a.reviews.UpdateStatus(a.ctx, id, status)
		if err != nil {
			log.Fatalf("%s failed: %v", sub, err)
		}
		printJSON(out)
	case "delete":
		id := mustID(args)
		if err := a.reviews.Delete(a.ctx, id); err != nil {
			log.Fatalf("delete failed: %v", err)
		}
		fmt.Println("✅ deleted review", id)
	default:
		log.Fatal("usage: artcli reviews <list|approve|reject|delete>")
	}
}

func (a *app) handleExport(sub string, args []string) {
	switch sub {
	case "json":
		fs := flag.NewFlagSet("export json", flag.ExitOnError)
		out := fs.String("out", "data/artworks.json", "output JSON path")
		limit := fs.Int("limit", 200, "max artworks to export")
		_ = fs.Parse(args)

		items, err := a.fetchArtworks(*limit)
		if err != nil {
			log.Fatalf("export json failed: %v", err)
		}
		if err := writeJSON(*out, items); err != nil {
			log.Fatalf("write json failed: %v", err)
		}
		log.Printf("✅ exported %d artworks to %s", len(items), *out)
	case "csv":
		fs := flag.NewFlagSet("export csv", flag.ExitOnError)
		out := fs.String("out", "data/artworks.csv", "output CSV path")
		limit := fs.Int("limit", 200, "max artworks to export")
		_ = fs.Parse(args)

		items, err := a.fetchArtworks(*limit)
		if err != nil {
			log.Fatalf("export csv failed: %v", err)
		}
		if err := writeCSV(*out, items); err != nil {
			log.Fatalf("write csv failed: %v", err)
		}
		log.Printf("✅ exported %d artworks to %s", len(items), *out)
	default:
		log.Fatal("usage: artcli export <json|csv>")
	}
}

// fetchArtworks walks the paginated listing until limit or the last
// page is reached.
func (a *app) fetchArtworks(limit int) ([]artworks.Artwork, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be > 0")
	}

	var out []artworks.Artwork
	page := 1
	for len(out) < limit {
		resp, err := a.artworks.List(a.ctx, artworksapi.Filters{Page: page, PerPage: 50})
		if err != nil {
			return nil, err
		}
		if len(resp.Data) == 0 {
			break
		}
		out = append(out, resp.Data...)
		if !resp.HasMore() {
			break
		}
		page++
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func writeJSON(path string, items []artworks.Artwork) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeCSV(path string, items []artworks.Artwork) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{
		"id", "slug", "title", "artist_slug", "status", "year", "medium", "price",
	}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{
			strconv.FormatUint(uint64(item.ID), 10),
			item.Slug,
			item.Title,
			item.ArtistSlug,
			item.Status,
			item.Year,
			item.Medium,
			item.Price,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// stageFile reads a local file into an attachment set.
func stageFile(set *form.AttachmentSet, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	set.Stage(filepath.Base(path), content)
}

func mustSlug(args []string) string {
	fs := flag.NewFlagSet("slug", flag.ExitOnError)
	slug := fs.String("slug", "", "entity slug")
	_ = fs.Parse(args)
	if *slug == "" {
		log.Fatal("slug is required")
	}
	return *slug
}

func mustID(args []string) uint {
	fs := flag.NewFlagSet("id", flag.ExitOnError)
	id := fs.Uint("id", 0, "entity id")
	_ = fs.Parse(args)
	if *id == 0 {
		log.Fatal("id is required")
	}
	return uint(*id)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func printUsage() {
	fmt.Println("artcli <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|logout|status")
	fmt.Println("  artists list|show|create|update|delete|toggle-featured")
	fmt.Println("  artworks list|show|create|delete|toggle-featured")
	fmt.Println("  products list|show|delete|toggle-stock")
	fmt.Println("  galleries list|show|delete")
	fmt.Println("  articles list|show|like|delete")
	fmt.Println("  orders list|show|set-status|set-payment")
	fmt.Println("  reviews list|approve|reject|delete")
	fmt.Println("  export json|csv")
}
