package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/anim_browser/pack/anim"
	"github.com/mogaika/anim_browser/vfs"
)

var (
	ServerDirectory vfs.Directory
	ServerRotation  anim.RotationPolicy = anim.SmallestThree{}
)

func NewRouter(d vfs.Directory, rp anim.RotationPolicy) *mux.Router {
	ServerDirectory = d
	if rp != nil {
		ServerRotation = rp
	}

	r := mux.NewRouter()
	r.HandleFunc("/json/anim/{file}/{frame}", HandlerAjaxAnimFrame)
	r.HandleFunc("/json/anim/{file}", HandlerAjaxAnimFile)
	r.HandleFunc("/json/anim", HandlerAjaxAnimList)
	r.HandleFunc("/yaml/anim/{file}", HandlerYamlAnimFile)
	r.HandleFunc("/gltf/anim/{file}/{frame}", HandlerGLTFAnimFrame)
	r.HandleFunc("/dump/anim/{file}", HandlerDumpAnimFile)
	return r
}

func StartServer(addr string, d vfs.Directory, rp anim.RotationPolicy) error {
	var h http.Handler = NewRouter(d, rp)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
