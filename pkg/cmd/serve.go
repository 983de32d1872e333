// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lemma-lang/go-lemma/pkg/ast"
	"github.com/lemma-lang/go-lemma/pkg/lemma"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the proof-checking API over HTTP.",
	Long: `Serve the proof-checking API over HTTP.  POST /api/check accepts
	{"code": ...} holding a proof script; POST /api/prove accepts a raw JSON
	request.  Both respond with the response envelope.  One solver subprocess
	is launched per request, so requests are independent and can be handled
	concurrently.`,
	Run: func(cmd *cobra.Command, args []string) {
		binary := solverBinary(cmd)
		//
		if !GetFlag(cmd, "verbose") {
			gin.SetMode(gin.ReleaseMode)
		}
		//
		router := gin.New()
		router.Use(gin.Recovery(), requestLogger())
		router.POST("/api/check", checkHandler(binary))
		router.POST("/api/prove", proveHandler(binary))
		//
		addr := fmt.Sprintf(":%d", GetUint(cmd, "port"))
		log.Infof("serving proof API on %s", addr)
		//
		if err := router.Run(addr); err != nil {
			log.Fatal(err)
		}
	},
}

// Tag each request with a fresh id and log it on completion.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("request_id", id)
		//
		start := time.Now()
		c.Next()
		//
		log.WithFields(log.Fields{
			"id":       id,
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Info("request")
	}
}

// Handle a proof script submitted as {"code": ...}, decorating the response
// envelope with a human-readable message.
func checkHandler(binary string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Code string `json:"code"`
		}
		//
		if err := c.ShouldBindJSON(&body); err != nil || body.Code == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"status":  ast.StatusError,
				"message": `Missing "code" in request body`,
			})
			//
			return
		}
		//
		request, err := lemma.Parse(body.Code)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"ok":      false,
				"status":  ast.StatusError,
				"message": fmt.Sprintf("Parse error: %v", err),
			})
			//
			return
		}
		//
		result := proveWithBinary(binary, request)
		//
		response := gin.H{"ok": result.Ok, "status": result.Status}
		//
		switch {
		case result.Ok:
			response["message"] = "The claim follows logically from the assumptions."
		case result.Status == ast.StatusDisproven:
			response["message"] = "A counterexample was found."
			response["model"] = result.Model
		case result.Status == ast.StatusUnknown:
			response["message"] = result.Message
		default:
			response["message"] = result.Error
		}
		//
		if len(result.StepResults) > 0 {
			response["step_results"] = result.StepResults
		}
		//
		c.JSON(http.StatusOK, response)
	}
}

// Handle a raw JSON request, responding with the undecorated envelope.
func proveHandler(binary string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, ast.ErrorResult(err.Error()))
			return
		}
		//
		request, err := ast.DecodeRequest(data)
		if err != nil {
			c.JSON(http.StatusOK, ast.ErrorResult(err.Error()))
			return
		}
		//
		c.JSON(http.StatusOK, proveWithBinary(binary, request))
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().Uint("port", 5050, "port to listen on")
}
